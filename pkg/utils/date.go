package utils

import "time"

const dateLayout = "2006-01-02"

// ParseDate valida uma data no formato YYYY-MM-DD usado como chave dos
// documentos diários.
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(dateLayout, dateStr)
}

// IsValidDate informa se a string é uma data YYYY-MM-DD válida.
func IsValidDate(dateStr string) bool {
	_, err := time.Parse(dateLayout, dateStr)
	return err == nil
}

// PreviousDate devolve a data do dia anterior no mesmo formato. Usada para
// puxar o tồn cuối do dia anterior como tồn đầu da nova sessão de inventário.
func PreviousDate(dateStr string) (string, error) {
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return "", err
	}
	return date.AddDate(0, 0, -1).Format(dateLayout), nil
}

// Today devolve a data corrente no formato de chave.
func Today() string {
	return time.Now().Format(dateLayout)
}
