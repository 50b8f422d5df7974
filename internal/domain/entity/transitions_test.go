package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/supplychain/mysupply-api/internal/domain/entity"
)

func TestSupplyOrderTransitions(t *testing.T) {
	tr := entity.SupplyOrderTransitions

	assert.True(t, tr.Allowed(entity.SupplyOrderEnAttente, entity.SupplyOrderEnCours))
	assert.True(t, tr.Allowed(entity.SupplyOrderEnAttente, entity.SupplyOrderRecue), "saltar EN_COURS es legal")
	assert.True(t, tr.Allowed(entity.SupplyOrderEnCours, entity.SupplyOrderRecue))

	// Sin retrocesos y RECUE terminal.
	assert.False(t, tr.Allowed(entity.SupplyOrderEnCours, entity.SupplyOrderEnAttente))
	assert.False(t, tr.Allowed(entity.SupplyOrderRecue, entity.SupplyOrderEnCours))
	assert.True(t, tr.Terminal(entity.SupplyOrderRecue))
	assert.False(t, tr.Terminal(entity.SupplyOrderEnAttente))
}

func TestProductionOrderTransitions(t *testing.T) {
	tr := entity.ProductionOrderTransitions

	assert.True(t, tr.Allowed(entity.ProductionOrderEnAttente, entity.ProductionOrderEnProduction))
	assert.True(t, tr.Allowed(entity.ProductionOrderEnProduction, entity.ProductionOrderTermine))
	assert.False(t, tr.Allowed(entity.ProductionOrderEnAttente, entity.ProductionOrderTermine), "no se puede terminar sin producir")
	assert.True(t, tr.Terminal(entity.ProductionOrderTermine))
}

func TestCustomerOrderAndDeliveryTransitions(t *testing.T) {
	assert.True(t, entity.CustomerOrderTransitions.Allowed(entity.CustomerOrderEnPreparation, entity.CustomerOrderEnRoute))
	assert.True(t, entity.CustomerOrderTransitions.Terminal(entity.CustomerOrderLivree))

	assert.True(t, entity.DeliveryTransitions.Allowed(entity.DeliveryPlanifiee, entity.DeliveryEnCours))
	assert.False(t, entity.DeliveryTransitions.Allowed(entity.DeliveryPlanifiee, entity.DeliveryLivree))
	assert.True(t, entity.DeliveryTransitions.Terminal(entity.DeliveryLivree))
}

func TestValidPriority(t *testing.T) {
	for _, p := range []string{entity.PriorityLow, entity.PriorityStandard, entity.PriorityHigh, entity.PriorityUrgent} {
		assert.True(t, entity.ValidPriority(p))
	}
	assert.False(t, entity.ValidPriority("CRITICAL"))
}
