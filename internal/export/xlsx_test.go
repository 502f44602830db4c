package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/elliottking-cpu/beast-app-sub003/internal/domain"
	"github.com/elliottking-cpu/beast-app-sub003/internal/export"
	"github.com/elliottking-cpu/beast-app-sub003/internal/models"
)

func strPtr(s string) *string { return &s }

func sampleView() *models.ClientView {
	install := time.Date(2020, 3, 14, 0, 0, 0, 0, time.UTC)
	return &models.ClientView{
		Account: domain.Account{ID: "acct-1", AccountType: domain.AccountTypeCommercial},
		Properties: []models.PropertyView{
			{
				Property: domain.Property{
					ID: "prop-a", AddressLine1: "2 High St", City: "York", Postcode: "YO1 1AA",
				},
				Tanks: []models.TankView{
					{
						Tank: domain.Tank{
							ID: "tank-1", PropertyID: "prop-a", Name: "Main",
							CapacityLitres: 2800, InstallDate: &install,
						},
						TypeName: strPtr("Septic Tank"),
					},
				},
			},
			{
				Property: domain.Property{
					ID: "prop-b", AddressLine1: "9 Low Rd", City: "Leeds", Postcode: "LS1 2BB",
				},
				Tanks: []models.TankView{},
			},
		},
		PropertyCount: 2,
		TankCount:     1,
	}
}

func TestGenerateClientExport(t *testing.T) {
	data, err := export.GenerateClientExport(sampleView())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Client Detail")
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per tank plus one for the tankless property")

	assert.Equal(t, export.ClientExportHeader, rows[0][:len(export.ClientExportHeader)])

	assert.Equal(t, "2 High St", rows[1][0])
	assert.Equal(t, "Main", rows[1][3])
	assert.Equal(t, "Septic Tank", rows[1][4])
	assert.Equal(t, "2800", rows[1][5])
	assert.Equal(t, "2020-03-14", rows[1][6])

	assert.Equal(t, "9 Low Rd", rows[2][0], "a property without tanks still exports its site row")
}

func TestGenerateClientExport_NoProperties(t *testing.T) {
	view := &models.ClientView{Account: domain.Account{ID: "acct-1"}}

	data, err := export.GenerateClientExport(view)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Client Detail")
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}

func TestGenerateClientExport_NilTypeLabelStaysBlank(t *testing.T) {
	view := sampleView()
	view.Properties[0].Tanks[0].TypeName = nil

	data, err := export.GenerateClientExport(view)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	value, err := f.GetCellValue("Client Detail", "E2")
	require.NoError(t, err)
	assert.Empty(t, value)
}
