package domain

// StaffDailyDetail é um registro de chấm công (ponto) de um dia de trabalho.
// Todos os campos monetários são derivados no momento do registro.
type StaffDailyDetail struct {
	Date             string  `json:"date"`
	CheckIn          string  `json:"checkIn"`  // "HH:MM"
	CheckOut         string  `json:"checkOut"` // "HH:MM"
	WorkHours        float64 `json:"workHours"`
	WorkDayCredit    float64 `json:"workDayCredit"` // ngày công: 1.0 a partir de 8h
	DailySalary      float64 `json:"dailySalary"`
	Allowance        float64 `json:"allowance"`
	TotalDailyIncome float64 `json:"totalDailyIncome"`
}

// StaffShift é o cadastro de um funcionário, chaveado pelo nome no store.
// Salary e TotalHours são acumulados recalculados por soma integral sobre
// Details a cada registro de ponto; edições manuais são sobrescritas.
type StaffShift struct {
	Name        string             `json:"name"`
	TotalHours  float64            `json:"totalHours"`
	Salary      float64            `json:"salary"`
	Role        string             `json:"role,omitempty"`
	HourlyRate  float64            `json:"hourlyRate,omitempty"`
	StartDate   string             `json:"startDate,omitempty"`
	Details     []StaffDailyDetail `json:"details,omitempty"`
	OffDays     []string           `json:"offDays,omitempty"` // rótulos T2..T7, CN
	DateOfBirth string             `json:"dateOfBirth,omitempty"`
	PhoneNumber string             `json:"phoneNumber,omitempty"`
}

// DetailForDate devolve o índice do registro de ponto da data, ou -1.
func (s *StaffShift) DetailForDate(date string) int {
	for i, d := range s.Details {
		if d.Date == date {
			return i
		}
	}
	return -1
}

// RecomputeTotals refaz os acumulados a partir da lista completa de registros.
// A recomputação integral é autoritativa: é mais simples que deltas
// incrementais e o volume de registros é pequeno.
func (s *StaffShift) RecomputeTotals() {
	var hours, income float64
	for _, d := range s.Details {
		hours += d.WorkHours
		income += d.TotalDailyIncome
	}
	s.TotalHours = hours
	s.Salary = income
}
