package billing

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// Nombres de campo aceptados por Update. Coinciden con los nombres del
// snapshot persistido; un nombre desconocido es un no-op.
const (
	FieldName     = "name"
	FieldQuantity = "quantity"
	FieldPrice    = "price"
	FieldTax      = "gst"
)

// ItemList mantiene la colección ordenada de líneas facturables y asigna
// identidades. Los IDs salen de un contador monotónico por lista, no del
// largo del slice: derivar el ID del largo reutilizaba IDs tras un borrado
// (lista [1,2], borrar 1, agregar → otra línea con ID 2).
type ItemList struct {
	items  []entity.LineItem
	nextID int64
}

// NewItemList construye la lista a partir de líneas existentes (p. ej. un
// snapshot cargado). El contador se siembra con el ID más alto presente.
// Con items vacío la lista arranca con una línea en blanco: el documento
// siempre conserva al menos una.
func NewItemList(items []entity.LineItem) *ItemList {
	l := &ItemList{}
	var max int64
	for _, it := range items {
		if it.ID > max {
			max = it.ID
		}
	}
	l.nextID = max
	l.items = make([]entity.LineItem, len(items))
	copy(l.items, items)
	if len(l.items) == 0 {
		l.items = append(l.items, entity.NewLineItem(l.allocID()))
	}
	return l
}

func (l *ItemList) allocID() int64 {
	l.nextID++
	return l.nextID
}

// Items devuelve una copia de las líneas en orden de inserción.
func (l *ItemList) Items() []entity.LineItem {
	out := make([]entity.LineItem, len(l.items))
	copy(out, l.items)
	return out
}

// Len cantidad de líneas.
func (l *ItemList) Len() int { return len(l.items) }

// Add agrega una línea nueva con valores por defecto y devuelve su copia.
func (l *ItemList) Add() entity.LineItem {
	item := entity.NewLineItem(l.allocID())
	l.items = append(l.items, item)
	return item
}

// Remove elimina la línea con el ID dado. Devuelve domain.ErrNotFound si no
// existe y domain.ErrLastItem si es la única línea: la lista nunca queda vacía.
func (l *ItemList) Remove(id int64) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return domain.ErrNotFound
	}
	if len(l.items) == 1 {
		return domain.ErrLastItem
	}
	l.items = append(l.items[:idx], l.items[idx+1:]...)
	return nil
}

// Update reemplaza un campo de la línea con el ID dado. El valor llega como
// texto (tal cual lo escribe el usuario) y los campos numéricos se coaccionan:
// cantidad inválida o < 1 → 1, precio o impuesto inválido o negativo → 0.
// Los errores de parseo nunca se propagan. ID desconocido → domain.ErrNotFound;
// campo desconocido → no-op.
func (l *ItemList) Update(id int64, field, value string) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return domain.ErrNotFound
	}
	it := &l.items[idx]
	switch field {
	case FieldName:
		it.Name = value
	case FieldQuantity:
		it.Quantity = coerceQuantity(value)
	case FieldPrice:
		it.UnitPrice = coerceAmount(value)
	case FieldTax:
		it.TaxRate = coerceAmount(value)
	}
	return nil
}

func (l *ItemList) indexOf(id int64) int {
	for i, it := range l.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func coerceQuantity(value string) int64 {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n < 1 {
		return entity.DefaultQuantity
	}
	return n
}

func coerceAmount(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}
