package accounting_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siteproc/siteproc-api/internal/domain/entity"
	"github.com/siteproc/siteproc-api/internal/infrastructure/accounting"
)

func sampleInput() accounting.LedgerInput {
	projectID := "p1"
	return accounting.LedgerInput{
		Company: &entity.Company{ID: "c1", Name: "Constructora Ñandú", Plan: "pro"},
		Projects: []*entity.Project{{
			ID:          "p1",
			Name:        "Torre Almagro",
			Status:      "active",
			Budget:      decimal.NewFromInt(1000),
			ActualSpent: decimal.NewFromInt(300),
			Variance:    decimal.NewFromInt(700),
		}},
		Orders: []*entity.Order{{
			ID:               "o1",
			OrderNumber:      "OC-0001",
			ProjectID:        &projectID,
			SupplierName:     "Áridos del Sur",
			OrderedQty:       decimal.NewFromInt(50),
			DeliveredQty:     decimal.NewFromInt(20),
			DeliveredValue:   decimal.NewFromInt(400),
			DeliveryProgress: "partial",
		}},
		Expenses: []*entity.Expense{{
			ID:          "x1",
			ProjectID:   "p1",
			Category:    "materiales",
			Description: "Cemento",
			Amount:      decimal.NewFromInt(300),
			SpentAt:     time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
		}},
	}
}

func TestLedgerExport_UTF8(t *testing.T) {
	out, err := accounting.NewLedgerExporter().Export(sampleInput(), accounting.EncodingUTF8)
	require.NoError(t, err)

	xml := string(out)
	assert.Contains(t, xml, `encoding="UTF-8"`)
	assert.Contains(t, xml, `company="Constructora Ñandú"`)
	assert.Contains(t, xml, "<Budget>1000</Budget>")
	assert.Contains(t, xml, "<Variance>700</Variance>")
	assert.Contains(t, xml, `number="OC-0001"`)
	assert.Contains(t, xml, "<DeliveredValue>400</DeliveredValue>")
	assert.Contains(t, xml, "<SpentAt>2026-03-15</SpentAt>")
}

func TestLedgerExport_Latin1(t *testing.T) {
	out, err := accounting.NewLedgerExporter().Export(sampleInput(), accounting.EncodingLatin1)
	require.NoError(t, err)

	xml := string(out)
	assert.Contains(t, xml, `encoding="ISO-8859-1"`)
	// Ñ en Latin-1 es un solo byte 0xD1, no la secuencia UTF-8.
	assert.True(t, strings.Contains(xml, "Constructora \xd1and\xfa"),
		"los caracteres acentuados deben re-codificarse a Latin-1")
	assert.False(t, strings.Contains(xml, "Ñ"),
		"no debe quedar la secuencia UTF-8 original")
}

func TestLedgerExport_SinEmpresaFalla(t *testing.T) {
	_, err := accounting.NewLedgerExporter().Export(accounting.LedgerInput{}, accounting.EncodingUTF8)
	assert.Error(t, err)
}
