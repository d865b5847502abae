package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/billing"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

func TestItemList_Vacia_ArrancaConUnaLinea(t *testing.T) {
	l := billing.NewItemList(nil)

	require.Equal(t, 1, l.Len())
	it := l.Items()[0]
	assert.Equal(t, int64(1), it.ID)
	assert.Equal(t, int64(1), it.Quantity)
	assert.True(t, it.UnitPrice.IsZero())
	assert.True(t, it.TaxRate.Equal(decimal.NewFromInt(18)))
}

func TestItemList_Add_AsignaIDsCrecientes(t *testing.T) {
	l := billing.NewItemList(nil)

	a := l.Add()
	b := l.Add()

	assert.Equal(t, int64(2), a.ID)
	assert.Equal(t, int64(3), b.ID)
	assert.Equal(t, 3, l.Len())
}

// TestItemList_SinReusoDeIDs reproduce el escenario que en el origen producía
// IDs duplicados: [1,2], borrar 1, agregar. Con el contador monotónico la
// línea nueva recibe ID 3, no 2.
func TestItemList_SinReusoDeIDs(t *testing.T) {
	l := billing.NewItemList(nil)
	l.Add() // IDs 1 y 2

	require.NoError(t, l.Remove(1))
	added := l.Add()

	assert.Equal(t, int64(3), added.ID, "el ID no debe reutilizarse tras un borrado")
	seen := map[int64]bool{}
	for _, it := range l.Items() {
		assert.False(t, seen[it.ID], "ID duplicado: %d", it.ID)
		seen[it.ID] = true
	}
}

func TestItemList_SiembraContadorDesdeSnapshot(t *testing.T) {
	l := billing.NewItemList([]entity.LineItem{
		entity.NewLineItem(4),
		entity.NewLineItem(9),
	})

	added := l.Add()
	assert.Equal(t, int64(10), added.ID,
		"el contador debe sembrarse con el ID más alto del snapshot")
}

func TestItemList_Remove_UltimaLinea(t *testing.T) {
	l := billing.NewItemList(nil)

	err := l.Remove(1)

	assert.ErrorIs(t, err, domain.ErrLastItem)
	assert.Equal(t, 1, l.Len(), "la lista nunca queda vacía")
}

func TestItemList_Remove_IDDesconocido(t *testing.T) {
	l := billing.NewItemList(nil)
	l.Add()

	assert.ErrorIs(t, l.Remove(99), domain.ErrNotFound)
	assert.Equal(t, 2, l.Len())
}

func TestItemList_Update_Campos(t *testing.T) {
	l := billing.NewItemList(nil)

	require.NoError(t, l.Update(1, billing.FieldName, "Servicio de consultoría"))
	require.NoError(t, l.Update(1, billing.FieldQuantity, "5"))
	require.NoError(t, l.Update(1, billing.FieldPrice, "1200.50"))
	require.NoError(t, l.Update(1, billing.FieldTax, "19"))

	it := l.Items()[0]
	assert.Equal(t, "Servicio de consultoría", it.Name)
	assert.Equal(t, int64(5), it.Quantity)
	assert.Equal(t, "1200.5", it.UnitPrice.String())
	assert.Equal(t, "19", it.TaxRate.String())
}

// TestItemList_Update_CoercionNumerica entradas no numéricas (o negativas)
// caen a los valores documentados: cantidad → 1, precio/impuesto → 0.
// Nunca se propaga un error de parseo.
func TestItemList_Update_CoercionNumerica(t *testing.T) {
	l := billing.NewItemList(nil)
	require.NoError(t, l.Update(1, billing.FieldQuantity, "7"))

	require.NoError(t, l.Update(1, billing.FieldQuantity, "abc"))
	assert.Equal(t, int64(1), l.Items()[0].Quantity)

	require.NoError(t, l.Update(1, billing.FieldQuantity, "-3"))
	assert.Equal(t, int64(1), l.Items()[0].Quantity)

	require.NoError(t, l.Update(1, billing.FieldPrice, "no-es-numero"))
	assert.True(t, l.Items()[0].UnitPrice.IsZero())

	require.NoError(t, l.Update(1, billing.FieldTax, "-5"))
	assert.True(t, l.Items()[0].TaxRate.IsZero())
}

func TestItemList_Update_IDDesconocido(t *testing.T) {
	l := billing.NewItemList(nil)

	assert.ErrorIs(t, l.Update(42, billing.FieldName, "x"), domain.ErrNotFound)
}

func TestItemList_Update_CampoDesconocido_EsNoOp(t *testing.T) {
	l := billing.NewItemList(nil)
	before := l.Items()[0]

	require.NoError(t, l.Update(1, "color", "azul"))

	assert.Equal(t, before, l.Items()[0])
}

func TestItemList_Items_DevuelveCopia(t *testing.T) {
	l := billing.NewItemList(nil)

	out := l.Items()
	out[0].Name = "mutado por fuera"

	assert.Empty(t, l.Items()[0].Name, "mutar la copia no debe afectar la lista")
}
