package impexp_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmantri/spendwise/internal/impexp"
	"github.com/nmantri/spendwise/internal/ledger"
	apperrors "github.com/nmantri/spendwise/internal/shared/errors"
)

func sampleLedger() []ledger.Transaction {
	return []ledger.Transaction{
		{
			ID:          1,
			Date:        ledger.NewDate(2024, time.January, 15),
			Type:        ledger.TypeSpend,
			Category:    "Food",
			Amount:      decimal.RequireFromString("250.50"),
			Description: "lunch",
		},
		{
			ID:          2,
			Date:        ledger.NewDate(2024, time.January, 31),
			Type:        ledger.TypeEarning,
			Category:    "Income",
			Amount:      decimal.RequireFromString("5000"),
			Description: "salary, January",
		},
		{
			ID:          3,
			Date:        ledger.NewDate(2024, time.February, 2),
			Type:        ledger.TypeInvestment,
			Category:    "Miscellaneous",
			Amount:      decimal.RequireFromString("1200"),
			Description: "",
		},
	}
}

func sums(txs []ledger.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Amount)
	}
	return total
}

func TestExportCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, impexp.ExportCSV(&buf, sampleLedger()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "id,date,type,category,amount,description", lines[0])
	assert.Equal(t, "1,2024-01-15,Spend,Food,250.50,lunch", lines[1])
	// Commas inside fields must be quoted.
	assert.Equal(t, `2,2024-01-31,Earning,Income,5000,"salary, January"`, lines[2])
}

func TestRoundTrip_CSV(t *testing.T) {
	original := sampleLedger()

	var buf bytes.Buffer
	require.NoError(t, impexp.ExportCSV(&buf, original))

	imported, err := impexp.ImportCSV(&buf)
	require.NoError(t, err)

	require.Len(t, imported, len(original))
	assert.True(t, sums(imported).Equal(sums(original)))
	for i := range original {
		assert.Equal(t, original[i].Date, imported[i].Date)
		assert.Equal(t, original[i].Type, imported[i].Type)
		assert.Equal(t, original[i].Category, imported[i].Category)
		assert.True(t, original[i].Amount.Equal(imported[i].Amount))
		assert.Equal(t, original[i].Description, imported[i].Description)
	}
}

func TestRoundTrip_JSON(t *testing.T) {
	original := sampleLedger()

	var buf bytes.Buffer
	require.NoError(t, impexp.ExportJSON(&buf, original))

	imported, err := impexp.ImportJSON(&buf)
	require.NoError(t, err)

	require.Len(t, imported, len(original))
	assert.True(t, sums(imported).Equal(sums(original)))
	for i := range original {
		assert.Equal(t, original[i].ID, imported[i].ID)
		assert.Equal(t, original[i].Date, imported[i].Date)
		assert.True(t, original[i].Amount.Equal(imported[i].Amount))
	}
}

func TestImportCSV_MissingColumn(t *testing.T) {
	// No amount column.
	in := "id,date,type,category,description\n1,2024-01-15,Spend,Food,lunch\n"

	_, err := impexp.ImportCSV(strings.NewReader(in))
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeSchema, apperrors.CodeOf(err))
}

func TestImportCSV_EmptyFile(t *testing.T) {
	_, err := impexp.ImportCSV(strings.NewReader(""))
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeSchema, apperrors.CodeOf(err))
}

func TestImportCSV_BadDateAbortsWholeImport(t *testing.T) {
	in := strings.Join([]string{
		"date,type,category,amount,description",
		"2024-01-15,Spend,Food,250.50,lunch",
		"someday,Spend,Food,10,bad row",
	}, "\n")

	txs, err := impexp.ImportCSV(strings.NewReader(in))
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeParse, apperrors.CodeOf(err))
	assert.Nil(t, txs)
}

func TestImportCSV_BadAmountAbortsWholeImport(t *testing.T) {
	in := strings.Join([]string{
		"date,type,category,amount,description",
		"2024-01-15,Spend,Food,lots,lunch",
	}, "\n")

	_, err := impexp.ImportCSV(strings.NewReader(in))
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
}

func TestImportCSV_OptionalID(t *testing.T) {
	// No id column at all: ids stay zero for the store to assign
	// positionally.
	in := strings.Join([]string{
		"date,type,category,amount,description",
		"2024-01-15,Spend,Food,250.50,lunch",
		"2024-01-16,Earning,Income,100,",
	}, "\n")

	txs, err := impexp.ImportCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, 0, txs[0].ID)
	assert.Equal(t, 0, txs[1].ID)
}

func TestImportCSV_ColumnsInAnyOrder(t *testing.T) {
	in := strings.Join([]string{
		"description,amount,category,type,date",
		"lunch,250.50,Food,Spend,2024-01-15",
	}, "\n")

	txs, err := impexp.ImportCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "lunch", txs[0].Description)
	assert.Equal(t, ledger.TypeSpend, txs[0].Type)
	assert.Equal(t, "2024-01-15", txs[0].Date.String())
}

func TestImportJSON_MissingKey(t *testing.T) {
	// Second record has no amount.
	in := `[
		{"date":"2024-01-15","type":"Spend","category":"Food","amount":250.50,"description":"lunch"},
		{"date":"2024-01-16","type":"Spend","category":"Food","description":"dinner"}
	]`

	_, err := impexp.ImportJSON(strings.NewReader(in))
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeSchema, apperrors.CodeOf(err))
}

func TestImportJSON_AmountAsStringOrNumber(t *testing.T) {
	in := `[
		{"date":"2024-01-15","type":"Spend","category":"Food","amount":"250.50","description":""},
		{"date":"2024-01-16","type":"Spend","category":"Food","amount":99,"description":""}
	]`

	txs, err := impexp.ImportJSON(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.True(t, txs[0].Amount.Equal(decimal.RequireFromString("250.50")))
	assert.True(t, txs[1].Amount.Equal(decimal.RequireFromString("99")))
}

func TestImportJSON_BadDate(t *testing.T) {
	in := `[{"date":"soon","type":"Spend","category":"Food","amount":1,"description":""}]`

	_, err := impexp.ImportJSON(strings.NewReader(in))
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeParse, apperrors.CodeOf(err))
}

func TestImportJSON_NotAnArray(t *testing.T) {
	_, err := impexp.ImportJSON(strings.NewReader(`{"date":"2024-01-15"}`))
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeParse, apperrors.CodeOf(err))
}

func TestExportJSON_EmptyLedger(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, impexp.ExportJSON(&buf, nil))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}
