package reports

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

type sheet struct {
	name    string
	headers []string
	rows    [][]interface{}
}

// Workbook renders the snapshot as a spreadsheet backup, one sheet per ledger table.
func (s *Service) Workbook(ctx context.Context) (*excelize.File, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := fillWorkbook(f, workbookSheets(snap)); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func fillWorkbook(f *excelize.File, sheets []sheet) error {
	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return err
		}
		for col, header := range sh.headers {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			if err := f.SetCellValue(sh.name, cell, header); err != nil {
				return fmt.Errorf("sheet %s header %q: %w", sh.name, header, err)
			}
		}
		for r, row := range sh.rows {
			cell, _ := excelize.CoordinatesToCellName(1, r+2)
			if err := f.SetSheetRow(sh.name, cell, &row); err != nil {
				return fmt.Errorf("sheet %s row %d: %w", sh.name, r+2, err)
			}
		}
	}
	f.SetActiveSheet(0)
	return nil
}

func workbookSheets(snap *Snapshot) []sheet {
	units := sheet{name: "Units", headers: []string{"ID", "Code", "Name", "Status", "Floor", "Building", "Area", "Type", "Total price", "Partner group"}}
	for _, u := range snap.Units {
		units.rows = append(units.rows, []interface{}{u.ID, u.Code, u.Name, u.Status, u.Floor, u.Building, u.Area, u.UnitType, u.TotalPrice, u.PartnerGroupID})
	}
	customers := sheet{name: "Customers", headers: []string{"ID", "Name", "Phone", "National ID", "Address", "Status"}}
	for _, c := range snap.Customers {
		customers.rows = append(customers.rows, []interface{}{c.ID, c.Name, c.Phone, c.NationalID, c.Address, c.Status})
	}
	contracts := sheet{name: "Contracts", headers: []string{"ID", "Code", "Unit", "Customer", "Total price", "Down payment", "Discount", "Maintenance", "Broker", "Broker amount", "Frequency", "Count", "Start"}}
	for _, c := range snap.Contracts {
		contracts.rows = append(contracts.rows, []interface{}{c.ID, c.Code, c.UnitID, c.CustomerID, c.TotalPrice, c.DownPayment, c.DiscountAmount, c.MaintenanceDeposit, c.BrokerName, c.BrokerAmount, c.Type, c.Count, c.Start})
	}
	installments := sheet{name: "Installments", headers: []string{"ID", "Unit", "Contract", "Type", "Amount", "Original amount", "Due date", "Payment date", "Status"}}
	for _, i := range snap.Installments {
		installments.rows = append(installments.rows, []interface{}{i.ID, i.UnitID, i.ContractID, i.Type, i.Amount, i.OriginalAmount, i.DueDate, i.PaymentDate, i.Status})
	}
	safes := sheet{name: "Safes", headers: []string{"ID", "Name", "Balance"}}
	for _, sf := range snap.Safes {
		safes.rows = append(safes.rows, []interface{}{sf.ID, sf.Name, sf.Balance})
	}
	vouchers := sheet{name: "Vouchers", headers: []string{"ID", "Type", "Date", "Amount", "Safe", "Description", "Payer", "Beneficiary", "Linked ref"}}
	for _, v := range snap.Vouchers {
		vouchers.rows = append(vouchers.rows, []interface{}{v.ID, v.Type, v.Date, v.Amount, v.SafeID, v.Description, v.Payer, v.Beneficiary, v.LinkedRef})
	}
	transfers := sheet{name: "Transfers", headers: []string{"ID", "From", "To", "Amount", "Date", "Notes"}}
	for _, t := range snap.Transfers {
		transfers.rows = append(transfers.rows, []interface{}{t.ID, t.FromSafeID, t.ToSafeID, t.Amount, t.Date, t.Notes})
	}
	return []sheet{units, customers, contracts, installments, safes, vouchers, transfers}
}
