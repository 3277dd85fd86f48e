package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func laptop() Asset {
	return Asset{
		Name:              "Laptop",
		Cost:              1000,
		PurchaseDate:      time.Date(2022, time.March, 1, 0, 0, 0, 0, time.UTC),
		AnnualRatePercent: 20,
		SalvageValue:      100,
	}
}

func TestAssetSchedule_StraightLineWithClampedFinalYear(t *testing.T) {
	asset := laptop()
	schedule := asset.Schedule()

	assert.Len(t, schedule, 5)

	first := schedule[0]
	assert.Equal(t, 2022, first.Year)
	assert.Equal(t, "1000.00", first.Opening.StringFixed(2))
	assert.Equal(t, "200.00", first.Depreciation.StringFixed(2))
	assert.Equal(t, "800.00", first.Closing.StringFixed(2))

	// final year writes off only down to salvage
	last := schedule[len(schedule)-1]
	assert.Equal(t, 2026, last.Year)
	assert.Equal(t, "200.00", last.Opening.StringFixed(2))
	assert.Equal(t, "100.00", last.Depreciation.StringFixed(2))
	assert.Equal(t, "100.00", last.Closing.StringFixed(2))
}

func TestAssetSchedule_OpeningMatchesPreviousClosing(t *testing.T) {
	asset := laptop()
	schedule := asset.Schedule()
	for i := 1; i < len(schedule); i++ {
		assert.True(t, schedule[i].Opening.Equal(schedule[i-1].Closing))
		assert.Equal(t, schedule[i-1].Year+1, schedule[i].Year)
	}
}

func TestAssetNetBookValue(t *testing.T) {
	asset := laptop()

	beforePurchase := asset.NetBookValue(time.Date(2021, time.June, 1, 0, 0, 0, 0, time.UTC))
	assert.True(t, beforePurchase.Equal(decimal.NewFromInt(1000)))

	midLife := asset.NetBookValue(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "600.00", midLife.StringFixed(2))

	afterFullDepreciation := asset.NetBookValue(time.Date(2030, time.June, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "100.00", afterFullDepreciation.StringFixed(2))
}

func TestAssetValidate(t *testing.T) {
	valid := laptop()
	assert.NoError(t, valid.Validate())

	noName := laptop()
	noName.Name = ""
	assert.Error(t, noName.Validate())

	badRate := laptop()
	badRate.AnnualRatePercent = 150
	assert.Error(t, badRate.Validate())

	salvageAboveCost := laptop()
	salvageAboveCost.SalvageValue = 1200
	assert.Error(t, salvageAboveCost.Validate())
}

func TestSubscriptionAdvance(t *testing.T) {
	monthly := Subscription{Cadence: CadenceMonthly, NextDueDate: time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)}
	monthly.Advance()
	// Go normalizes Jan 31 + 1 month to Mar 2
	assert.Equal(t, time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC), monthly.NextDueDate)

	yearly := Subscription{Cadence: CadenceYearly, NextDueDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)}
	yearly.Advance()
	assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), yearly.NextDueDate)
}
