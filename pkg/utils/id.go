package utils

import (
	"fmt"
	"strconv"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID devolve um identificador curto aleatório.
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 6)
}

// DatedID compõe um id único prefixado pela data (chaves de despesas e de
// vendas por item). O sufixo aleatório evita colisão quando lançamentos são
// apagados e recriados de forma concorrente.
func DatedID(date string) string {
	suffix, err := GenerateID()
	if err != nil {
		// gonanoid só falha sem entropia do sistema; não há o que fazer aqui
		suffix = "000000"
	}
	return fmt.Sprintf("%s-%s", date, suffix)
}

// MaterialKey é a chave de documento de um material no catálogo.
func MaterialKey(id int) string {
	return strconv.Itoa(id)
}

