package export_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rovasEdu/servicos/internal/domain"
	"github.com/rovasEdu/servicos/internal/export"
)

func TestProvidersXLSX(t *testing.T) {
	list := []domain.Provider{
		{
			Name:        "João Silva",
			Specialties: []string{"Eletricista", "Automação residencial"},
			Contacts:    []domain.Contact{{Type: "Celular", Value: "86912345678"}},
			Emails:      []domain.Email{{Tag: "Principal", Value: "joao@example.com"}},
			Address:     "Rua A, 123",
			CustomTags:  []string{"urgente"},
			Review:      &domain.Review{Agility: 5, UpToDate: 5},
			IsFavorite:  true,
		},
		{Name: "Maria"},
	}

	data, err := export.ProvidersXLSX(list)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue("Prestadores", "A2")
	require.NoError(t, err)
	require.Equal(t, "João Silva", name)

	specialties, err := f.GetCellValue("Prestadores", "B2")
	require.NoError(t, err)
	require.Equal(t, "Eletricista, Automação residencial", specialties)

	phone, err := f.GetCellValue("Prestadores", "C2")
	require.NoError(t, err)
	require.Equal(t, "86912345678", phone)

	favorite, err := f.GetCellValue("Prestadores", "H2")
	require.NoError(t, err)
	require.Equal(t, "Sim", favorite)

	// linha sem contatos/avaliação não quebra
	second, err := f.GetCellValue("Prestadores", "A3")
	require.NoError(t, err)
	require.Equal(t, "Maria", second)
}

func TestProvidersXLSX_EmptyCollection(t *testing.T) {
	data, err := export.ProvidersXLSX(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Prestadores", "A1")
	require.NoError(t, err)
	require.Equal(t, "Nome", header)
}
