package employee

type CreateEmployeeRequest struct {
	FullName        string  `json:"nombre" binding:"required,min=2,max=255"`
	NationalID      string  `json:"cedula" binding:"required,min=5,max=20,numeric"`
	EmploymentType  string  `json:"tipo" binding:"required,oneof=FIJO TEMPORAL CONTRATISTA"`
	BaseSalary      float64 `json:"salario" binding:"required,gt=0"`
	DeductHealth    *bool   `json:"deducir_salud"`
	DeductPension   *bool   `json:"deducir_pension"`
	DeductTransport *bool   `json:"deducir_auxilio_transporte"`
	ConsumerDebt    float64 `json:"deuda_consumos" binding:"gte=0"`
	Comment         string  `json:"comentario"`
}

type UpdateEmployeeRequest struct {
	FullName        string  `json:"nombre" binding:"required,min=2,max=255"`
	EmploymentType  string  `json:"tipo" binding:"required,oneof=FIJO TEMPORAL CONTRATISTA"`
	BaseSalary      float64 `json:"salario" binding:"required,gt=0"`
	DeductHealth    *bool   `json:"deducir_salud"`
	DeductPension   *bool   `json:"deducir_pension"`
	DeductTransport *bool   `json:"deducir_auxilio_transporte"`
	ConsumerDebt    float64 `json:"deuda_consumos" binding:"gte=0"`
	Comment         string  `json:"comentario"`
}

type EmployeeResponse struct {
	ID              string  `json:"id"`
	CompanyID       string  `json:"company_id"`
	EmployeeNumber  string  `json:"employee_number"`
	FullName        string  `json:"nombre"`
	NationalID      string  `json:"cedula"`
	EmploymentType  string  `json:"tipo"`
	BaseSalary      float64 `json:"salario"`
	DeductHealth    bool    `json:"deducir_salud"`
	DeductPension   bool    `json:"deducir_pension"`
	DeductTransport bool    `json:"deducir_auxilio_transporte"`
	ConsumerDebt    float64 `json:"deuda_consumos"`
	Comment         string  `json:"comentario,omitempty"`
}
