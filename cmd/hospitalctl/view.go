package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"hospital-medicine-api/pkg/dto"
)

func renderTable(out io.Writer, hospitals []dto.HospitalResponse) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPROFILE\tOPEN DATE\tDEPTS\tBEDS\tCHILD\tMEDICINE\tPRICE")
	for _, h := range hospitals {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
			h.ID, h.Name, h.Profile, h.OpenDate, h.Departments, h.Beds,
			yesNo(h.IsChildDept), h.Medicines.Name, h.Medicines.Price)
	}
	return tw.Flush()
}

func renderDetail(out io.Writer, h dto.HospitalResponse) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"ID", fmt.Sprint(h.ID)},
		{"Name", h.Name},
		{"Address", h.Address},
		{"Profile", h.Profile},
		{"Open date", h.OpenDate},
		{"Departments", fmt.Sprint(h.Departments)},
		{"Beds", fmt.Sprint(h.Beds)},
		{"Children's dept", yesNo(h.IsChildDept)},
		{"Medicine", ""},
		{"  ID", fmt.Sprint(h.Medicines.ID)},
		{"  Name", h.Medicines.Name},
		{"  Form", h.Medicines.Form},
		{"  Manufacturer", h.Medicines.Manufacturer},
		{"  Produced", h.Medicines.ProductionDate},
		{"  Expires", h.Medicines.Expiration},
		{"  Price", h.Medicines.Price},
		{"  Prescription", yesNo(h.Medicines.IsPrescription)},
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s:\t%s\n", row[0], row[1])
	}
	return tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
