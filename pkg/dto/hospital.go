// Package dto holds the wire representations of hospitals and medicines.
package dto

type HospitalRequest struct {
	Name        string          `json:"name"`
	Address     string          `json:"address"`
	Profile     string          `json:"profile"`
	OpenDate    string          `json:"openDate"`
	Departments int             `json:"departments" binding:"min=0"`
	Beds        int             `json:"beds" binding:"min=0"`
	IsChildDept bool            `json:"isChildDept"`
	Medicines   MedicineRequest `json:"medicines"`
}

type HospitalResponse struct {
	ID          uint             `json:"id"`
	Name        string           `json:"name"`
	Address     string           `json:"address"`
	Profile     string           `json:"profile"`
	OpenDate    string           `json:"openDate"`
	Departments int              `json:"departments"`
	Beds        int              `json:"beds"`
	IsChildDept bool             `json:"isChildDept"`
	Medicines   MedicineResponse `json:"medicines"`
}

type MedicineRequest struct {
	Name           string `json:"name"`
	Form           string `json:"form"`
	Manufacturer   string `json:"manufacturer"`
	ProductionDate string `json:"productionDate"`
	Expiration     string `json:"expiration"`
	Price          string `json:"price"`
	IsPrescription bool   `json:"isPrescription"`
}

type MedicineResponse struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Form           string `json:"form"`
	Manufacturer   string `json:"manufacturer"`
	ProductionDate string `json:"productionDate"`
	Expiration     string `json:"expiration"`
	Price          string `json:"price"`
	IsPrescription bool   `json:"isPrescription"`
}

// Request converts a response back into a request body, which is how the
// client edits an existing record before sending it back.
func (r HospitalResponse) Request() HospitalRequest {
	return HospitalRequest{
		Name:        r.Name,
		Address:     r.Address,
		Profile:     r.Profile,
		OpenDate:    r.OpenDate,
		Departments: r.Departments,
		Beds:        r.Beds,
		IsChildDept: r.IsChildDept,
		Medicines: MedicineRequest{
			Name:           r.Medicines.Name,
			Form:           r.Medicines.Form,
			Manufacturer:   r.Medicines.Manufacturer,
			ProductionDate: r.Medicines.ProductionDate,
			Expiration:     r.Medicines.Expiration,
			Price:          r.Medicines.Price,
			IsPrescription: r.Medicines.IsPrescription,
		},
	}
}
