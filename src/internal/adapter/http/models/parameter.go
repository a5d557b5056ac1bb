package models

type SetParameterRequest struct {
	Key         string `json:"-"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

func (r SetParameterRequest) Validate() error {
	var v validation
	v.required("key", r.Key)
	v.required("value", r.Value)
	return v.result()
}

type ParameterResponse struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

type AuditEntryResponse struct {
	ID         int64  `json:"id"`
	OperatorID string `json:"operatorId,omitempty"`
	Action     string `json:"action"`
	Entity     string `json:"entity"`
	Detail     string `json:"detail"`
	IPAddress  string `json:"ipAddress,omitempty"`
	CreatedAt  string `json:"createdAt"`
}
