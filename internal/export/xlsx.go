// Package export gera a planilha de prestadores para backup legível
// fora da aplicação (o backup fiel continua sendo o JSON exportado).
package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rovasEdu/servicos/internal/domain"
)

// providersHeader colunas da planilha exportada.
var providersHeader = []string{
	"Nome",
	"Especialidades",
	"Telefone",
	"E-mail",
	"Endereço",
	"Tags",
	"Avaliação Média",
	"Favorito",
}

// ProvidersXLSX gera a planilha com uma linha por prestador.
func ProvidersXLSX(list []domain.Provider) ([]byte, error) {
	f := excelize.NewFile()

	sheetName := "Prestadores"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, title := range providersHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, err
		}
	}

	for row, p := range list {
		values := []any{
			p.Name,
			strings.Join(p.Specialties, ", "),
			firstContact(p),
			firstEmail(p),
			p.Address,
			strings.Join(p.CustomTags, ", "),
			p.Review.Average(),
			favoriteLabel(p.IsFavorite),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				f.Close()
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				f.Close()
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func firstContact(p domain.Provider) string {
	if len(p.Contacts) == 0 {
		return ""
	}
	return p.Contacts[0].Value
}

func firstEmail(p domain.Provider) string {
	if len(p.Emails) == 0 {
		return ""
	}
	return p.Emails[0].Value
}

func favoriteLabel(fav bool) string {
	if fav {
		return "Sim"
	}
	return "Não"
}
