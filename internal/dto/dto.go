package dto

// AuditQuery - параметры проверки из строки запроса
type AuditQuery struct {
	Lower    string `validate:"omitempty,numeric"`
	Upper    string `validate:"omitempty,numeric"`
	MaxLevel int    `validate:"min=0,max=100"`
	Strict   *bool
}

// ImportQuery - параметры загрузки состава
type ImportQuery struct {
	Strict *bool
}

// AuditResponse - ответ с результатом проверки
type AuditResponse struct {
	RunID     string            `json:"run_id"`
	Employees int               `json:"employees"`
	Lines     []string          `json:"lines"`
	Findings  []FindingResponse `json:"findings"`
}

// FindingResponse - одно замечание
type FindingResponse struct {
	Kind        string  `json:"kind"`
	EmployeeIDs []int64 `json:"employee_ids"`
	Delta       *string `json:"delta,omitempty"`
	Message     string  `json:"message"`
}

// ImportResponse - ответ на загрузку состава
type ImportResponse struct {
	Imported int `json:"imported"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
