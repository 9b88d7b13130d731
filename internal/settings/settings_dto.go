package settings

type HourTypeRateInput struct {
	DisplayName      string  `json:"nombre" binding:"required,max=120"`
	SurchargePct     float64 `json:"porcentaje" binding:"gte=0"`
	AppliesPermanent *bool   `json:"aplica_fijo"`
	AppliesTemporary *bool   `json:"aplica_temporal"`
}

type UpdateSettingsRequest struct {
	CompanyName string `json:"nombre_empresa" binding:"max=255"`
	NIT         string `json:"nit" binding:"max=30"`
	Address     string `json:"direccion" binding:"max=255"`

	MinimumSalary      float64 `json:"salario_minimo" binding:"required,gt=0"`
	TransportAllowance float64 `json:"auxilio_transporte" binding:"gte=0"`
	HealthPct          float64 `json:"porcentaje_salud" binding:"gte=0,lte=100"`
	PensionPct         float64 `json:"porcentaje_pension" binding:"gte=0,lte=100"`
	HourlyRate         float64 `json:"valor_hora_ordinaria" binding:"required,gt=0"`

	HourTypes map[string]HourTypeRateInput `json:"tipos_hora" binding:"required"`
}

type HourTypeRateResponse struct {
	Category         string  `json:"tipo"`
	DisplayName      string  `json:"nombre"`
	SurchargePct     float64 `json:"porcentaje"`
	AppliesPermanent bool    `json:"aplica_fijo"`
	AppliesTemporary bool    `json:"aplica_temporal"`
}

type SettingsResponse struct {
	CompanyName string `json:"nombre_empresa,omitempty"`
	NIT         string `json:"nit,omitempty"`
	Address     string `json:"direccion,omitempty"`

	MinimumSalary      float64 `json:"salario_minimo"`
	TransportAllowance float64 `json:"auxilio_transporte"`
	HealthPct          float64 `json:"porcentaje_salud"`
	PensionPct         float64 `json:"porcentaje_pension"`
	HourlyRate         float64 `json:"valor_hora_ordinaria"`

	// Keyed by category, ordered responses come from the repo's fixed order.
	HourTypes []HourTypeRateResponse `json:"tipos_hora"`
}
