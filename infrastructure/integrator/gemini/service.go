package gemini

import (
	"context"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/cafe-manager-api/infrastructure/integrator/gemini/geminiclient"
	"github.com/vfg2006/cafe-manager-api/internal/config"
	"github.com/vfg2006/cafe-manager-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrUnreadableResponse indica que o modelo respondeu algo que não é o JSON
// esperado. O chamador traduz isso num pedido de foto mais nítida.
var ErrUnreadableResponse = errors.New("não foi possível interpretar os dados da imagem")

// O prompt é mantido em vietnamita porque as planilhas analisadas vêm nesse
// idioma e os rótulos das colunas guiam a extração.
const extractionPrompt = `
Bạn là một chuyên gia phân tích dữ liệu tài chính F&B (quán cafe).
Nhiệm vụ của bạn là trích xuất dữ liệu từ hình ảnh bảng tính Excel được cung cấp.

Hãy cố gắng trích xuất các trường dữ liệu chi tiết sau đây cho từng ngày (nếu có):

**1. Doanh thu:**
- Doanh thu tổng (Total Revenue)
- Doanh thu ca sáng (Morning Revenue)
- Doanh thu ca tối (Evening Revenue)
- Chiết khấu/Giảm giá (Discounts)
- Doanh thu Net (Net Revenue)

**2. Chi phí NVL (COGS):**
- Chi phí NVL Cost (Theo định mức %)
- Chi phí NVL nhập trong tháng (Import)
- Chi phí Hàng hủy (Waste)

**3. Chi phí Nhân sự:**
- Tiền lương (Salary)
- Tiền thưởng (Bonus)
- Phụ cấp (Allowance)

**4. Chi phí Khác:**
- Marketing
- Chi phí CCDC (Công cụ dụng cụ)
- Vật liệu tiêu hao
- Chi phí bằng tiền khác

**5. Chi tiết Món Bán Ra (Sales Mix) - QUAN TRỌNG:**
- Nếu trong ảnh có bảng danh sách các món nước đã bán, hãy trích xuất tên món, số lượng bán và tổng tiền.
- Nếu không có cột tổng tiền, hãy ước lượng hoặc để 0.
- Cố gắng lấy Top 5-10 món bán chạy nhất nếu danh sách quá dài.

**Định dạng JSON trả về:**
{
  "businessResults": [
    {
      "date": "YYYY-MM-DD",
      "totalRevenue": number,
      "morningRevenue": number,
      "eveningRevenue": number,
      "discounts": number,
      "netRevenue": number,
      "costOfGoodsSold": number,
      "costOfGoodsImport": number,
      "wasteCost": number,
      "staffSalary": number,
      "staffBonus": number,
      "staffAllowance": number,
      "marketing": number,
      "tools": number,
      "consumables": number,
      "otherCash": number,
      "netProfit": number
    }
  ],
  "staffPayroll": [
    { "name": "string", "totalHours": number, "salary": number, "role": "string" }
  ],
  "salesDetails": [
     { "itemName": "string", "quantity": number, "revenue": number }
  ]
}

Lưu ý:
- Nếu ô trống hoặc không có số liệu, hãy để giá trị là 0.
- Chuyển đổi số tiền (ví dụ: 1.200.000) thành số nguyên (1200000).
- Nếu ảnh mờ, hãy ước lượng dựa trên tổng.
- Đối với salesDetails, hãy gán ngày của món hàng trùng với ngày của businessResult.
`

type Extractor interface {
	ExtractFromImage(ctx context.Context, imageBase64, mimeType string) (*domain.ExtractedData, error)
}

type GeminiIntegrator struct {
	cfg    *config.Config
	Client geminiclient.Client
}

func New(cfg *config.Config, client geminiclient.Client) Extractor {
	return &GeminiIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

// ExtractFromImage envia a foto da planilha ao modelo e decodifica o JSON de
// dados extraídos. Resposta fora do formato vira ErrUnreadableResponse.
func (s *GeminiIntegrator) ExtractFromImage(ctx context.Context, imageBase64, mimeType string) (*domain.ExtractedData, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	text, err := s.Client.GenerateContent(ctx, geminiclient.GenerateParams{
		Prompt:      extractionPrompt,
		ImageBase64: imageBase64,
		MimeType:    mimeType,
	})
	if err != nil {
		return nil, err
	}

	var extracted domain.ExtractedData
	if err := json.Unmarshal([]byte(text), &extracted); err != nil {
		return nil, errors.Wrap(ErrUnreadableResponse, err.Error())
	}

	return &extracted, nil
}
