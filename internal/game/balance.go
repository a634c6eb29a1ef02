package game

// Balance holds every tunable constant of the economy. Exchange rates live
// here and nowhere else.
type Balance struct {
	EnergyMax           int `yaml:"energy_max" json:"energyMax"`
	EnergyMaxCap        int `yaml:"energy_max_cap" json:"energyMaxCap"`
	ReputationMax       int `yaml:"reputation_max" json:"reputationMax"`
	MoneyTarget         int `yaml:"money_target" json:"moneyTarget"`
	MoneyPerEnergy      int `yaml:"money_per_energy" json:"moneyPerEnergy"`
	EnergyPerReputation int `yaml:"energy_per_reputation" json:"energyPerReputation"`
	EnergyPerDay        int `yaml:"energy_per_day" json:"energyPerDay"`
	DailyEnergy         int `yaml:"daily_energy" json:"dailyEnergy"`
	DaysPerWeek         int `yaml:"days_per_week" json:"daysPerWeek"`
	DaysPerMonth        int `yaml:"days_per_month" json:"daysPerMonth"`
	InflationStep       int `yaml:"inflation_step" json:"inflationStep"`
	MaxHandSize         int `yaml:"max_hand_size" json:"maxHandSize"`
	InitialHandSize     int `yaml:"initial_hand_size" json:"initialHandSize"`
	DrawCost            int `yaml:"draw_cost" json:"drawCost"`
	ChoiceOptions       int `yaml:"choice_options" json:"choiceOptions"`
	LedgerSize          int `yaml:"ledger_size" json:"ledgerSize"`
}

func DefaultBalance() Balance {
	return Balance{
		EnergyMax:           20,
		EnergyMaxCap:        40,
		ReputationMax:       10,
		MoneyTarget:         10000,
		MoneyPerEnergy:      100,
		EnergyPerReputation: 5,
		EnergyPerDay:        10,
		DailyEnergy:         3,
		DaysPerWeek:         7,
		DaysPerMonth:        28,
		InflationStep:       1,
		MaxHandSize:         8,
		InitialHandSize:     5,
		DrawCost:            2,
		ChoiceOptions:       3,
		LedgerSize:          50,
	}
}

// withDefaults turns an unset Balance into DefaultBalance and fills the
// structural fields a partial config left at zero. DrawCost and DailyEnergy
// keep an explicit zero once any field is set.
func (b Balance) withDefaults() Balance {
	d := DefaultBalance()
	if b == (Balance{}) {
		return d
	}
	fill := func(v *int, def int) {
		if *v <= 0 {
			*v = def
		}
	}
	fill(&b.EnergyMax, d.EnergyMax)
	fill(&b.EnergyMaxCap, d.EnergyMaxCap)
	fill(&b.ReputationMax, d.ReputationMax)
	fill(&b.MoneyTarget, d.MoneyTarget)
	fill(&b.MoneyPerEnergy, d.MoneyPerEnergy)
	fill(&b.EnergyPerReputation, d.EnergyPerReputation)
	fill(&b.EnergyPerDay, d.EnergyPerDay)
	fill(&b.DaysPerWeek, d.DaysPerWeek)
	fill(&b.DaysPerMonth, d.DaysPerMonth)
	fill(&b.InflationStep, d.InflationStep)
	fill(&b.MaxHandSize, d.MaxHandSize)
	fill(&b.InitialHandSize, d.InitialHandSize)
	fill(&b.ChoiceOptions, d.ChoiceOptions)
	fill(&b.LedgerSize, d.LedgerSize)
	if b.EnergyMaxCap < b.EnergyMax {
		b.EnergyMaxCap = b.EnergyMax
	}
	if b.InitialHandSize > b.MaxHandSize {
		b.InitialHandSize = b.MaxHandSize
	}
	return b
}
