package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Códigos de erro padronizados da API
const (
	// Erros de autenticação (AUTH)
	ErrInvalidCredentials = "AUTH_001" // Senha de operação incorreta
	ErrInvalidToken       = "AUTH_002" // Token inválido
	ErrExpiredToken       = "AUTH_003" // Token expirado
	ErrAdminOnly          = "AUTH_004" // Operação restrita a administradores

	// Erros de validação (VAL)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrInvalidAmount       = "VAL_004" // Valor não numérico ou não positivo

	// Conflitos de estado (CONF)
	ErrAttendanceExists = "CONF_001" // Já existe ponto na data; exige confirmação
	ErrNotFound         = "CONF_002" // Documento não encontrado

	// Erros do servidor (SRV)
	ErrInternalServer = "SRV_001" // Erro interno do servidor
	ErrStoreOperation = "SRV_002" // Erro de acesso ao document store
	ErrStoreAccess    = "SRV_003" // Permissão negada no document store (fatal para a sessão)

	// Erros de serviço externo (EXT)
	ErrImageAnalysis   = "EXT_001" // Falha na análise de imagem
	ErrUnreadableImage = "EXT_002" // Resposta da análise não pôde ser interpretada
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidCredentials:  http.StatusUnauthorized,
	ErrInvalidToken:        http.StatusUnauthorized,
	ErrExpiredToken:        http.StatusUnauthorized,
	ErrAdminOnly:           http.StatusForbidden,
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrInvalidAmount:       http.StatusBadRequest,
	ErrAttendanceExists:    http.StatusConflict,
	ErrNotFound:            http.StatusNotFound,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrStoreOperation:      http.StatusInternalServerError,
	ErrStoreAccess:         http.StatusServiceUnavailable,
	ErrImageAnalysis:       http.StatusBadGateway,
	ErrUnreadableImage:     http.StatusUnprocessableEntity,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// WriteError escreve o erro padronizado na resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}
