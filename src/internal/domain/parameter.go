package domain

import "time"

const (
	ParamDailyLateRate  = "INTERES_MORA_DIARIO"
	ParamCompanyName    = "EMPRESA_NOMBRE"
	ParamCompanyTaxID   = "EMPRESA_RUC"
	ParamCompanyAddress = "EMPRESA_DIRECCION"
	ParamCompanyPhone   = "EMPRESA_TELEFONO"
)

type SystemParameter struct {
	Key         string
	Value       string
	Description string
	UpdatedAt   time.Time
}
