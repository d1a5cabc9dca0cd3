package customerservice

// Customer модель клиента из CustomerService
type Customer struct {
	ID          int64   `json:"id"`
	TenantID    int64   `json:"tenant_id"`
	Name        string  `json:"name"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	LineUserID  *string `json:"line_user_id,omitempty"`
	IsActive    bool    `json:"is_active"`
}

// ErrorResponse модель ошибки от CustomerService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
