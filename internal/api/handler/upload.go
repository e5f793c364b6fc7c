package handler

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cafe-manager-api/infrastructure/integrator/gemini"
	"github.com/vfg2006/cafe-manager-api/internal/domain"
	"github.com/vfg2006/cafe-manager-api/internal/usecases/analyzing"
	"github.com/vfg2006/cafe-manager-api/pkg/apiErrors"
)

type AnalyzeImageRequest struct {
	ImageBase64 string `json:"imageBase64"`
	MimeType    string `json:"mimeType"`
}

// AnalyzeImage envia a foto da planilha para extração e devolve os dados
// estruturados para conferência do operador antes da aplicação.
func AnalyzeImage(service analyzing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AnalyzeImageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.ImageBase64 == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Imagem não fornecida", nil)
			return
		}

		// Aceitar data-URL por conveniência do cliente.
		if idx := strings.Index(req.ImageBase64, ","); idx >= 0 && strings.HasPrefix(req.ImageBase64, "data:") {
			req.ImageBase64 = req.ImageBase64[idx+1:]
		}

		extracted, err := service.AnalyzeImage(r.Context(), req.ImageBase64, req.MimeType)
		if err != nil {
			if errors.Is(err, gemini.ErrUnreadableResponse) {
				apiErrors.WriteError(w, apiErrors.ErrUnreadableImage, "Não foi possível ler os dados da imagem, tente uma foto mais nítida", nil)
				return
			}
			logrus.WithError(err).Error("Erro na análise de imagem")
			apiErrors.WriteError(w, apiErrors.ErrImageAnalysis, "Falha na análise de imagem", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(extracted)
	}
}

// ApplyExtracted persiste os dados extraídos depois da conferência.
func ApplyExtracted(service analyzing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var data domain.ExtractedData
		if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if len(data.BusinessResults) == 0 && len(data.SalesDetails) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nenhum dado extraído para aplicar", nil)
			return
		}

		if err := service.ApplyExtracted(r.Context(), &data); err != nil {
			logrus.WithError(err).Error("Erro ao aplicar dados extraídos")
			apiErrors.WriteError(w, apiErrors.ErrStoreOperation, "Erro ao aplicar dados extraídos", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
