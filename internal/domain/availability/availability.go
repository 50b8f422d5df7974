// Package availability contiene los chequeos puros de disponibilidad y
// elegibilidad que habilitan las transiciones del ciclo de vida.
// No toca persistencia: recibe entidades ya cargadas y devuelve la lista
// completa de incumplimientos (vacía = puede proceder).
package availability

import (
	"github.com/supplychain/mysupply-api/internal/domain"
	"github.com/supplychain/mysupply-api/internal/domain/entity"
)

// MaterialShortfalls compara, para cada línea de la BOM, el stock actual del
// material contra bom.Quantity × orderQty. Devuelve todos los faltantes.
func MaterialShortfalls(boms []*entity.BillOfMaterial, materials map[string]*entity.RawMaterial, orderQty int) []domain.Shortfall {
	var shortfalls []domain.Shortfall
	for _, bom := range boms {
		material, ok := materials[bom.MaterialID]
		if !ok {
			continue
		}
		needed := bom.Quantity * orderQty
		if material.Stock < needed {
			shortfalls = append(shortfalls, domain.Shortfall{
				Name:      material.Name,
				Needed:    needed,
				Available: material.Stock,
			})
		}
	}
	return shortfalls
}

// ProductShortfalls valida las líneas de un pedido contra el stock actual de
// cada producto. Un pedido puede repetir producto en varias líneas: la cantidad
// requerida se agrega por producto antes de comparar, porque el consumo
// posterior también es acumulativo. Devuelve todos los faltantes, no solo el
// primero.
func ProductShortfalls(lines []entity.CustomerOrderLine, products map[string]*entity.Product) []domain.Shortfall {
	needed := make(map[string]int, len(lines))
	var order []string
	for _, line := range lines {
		if _, ok := products[line.ProductID]; !ok {
			continue
		}
		if _, seen := needed[line.ProductID]; !seen {
			order = append(order, line.ProductID)
		}
		needed[line.ProductID] += line.Quantity
	}
	var shortfalls []domain.Shortfall
	for _, id := range order {
		product := products[id]
		if product.Stock < needed[id] {
			shortfalls = append(shortfalls, domain.Shortfall{
				Name:      product.Name,
				Needed:    needed[id],
				Available: product.Stock,
			})
		}
	}
	return shortfalls
}

// IneligibleMaterials devuelve los materiales pedidos que NO están en el
// conjunto autorizado del proveedor. eligibleIDs es el set de IDs elegibles.
func IneligibleMaterials(eligibleIDs map[string]struct{}, requested []*entity.RawMaterial) []domain.IneligibleMaterial {
	var ineligible []domain.IneligibleMaterial
	seen := make(map[string]struct{}, len(requested))
	for _, m := range requested {
		if _, dup := seen[m.ID]; dup {
			continue
		}
		seen[m.ID] = struct{}{}
		if _, ok := eligibleIDs[m.ID]; !ok {
			ineligible = append(ineligible, domain.IneligibleMaterial{ID: m.ID, Name: m.Name})
		}
	}
	return ineligible
}
