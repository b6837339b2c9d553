package worktime

import (
	"github.com/shopspring/decimal"
	"github.com/warp/worktime-engine/generic"
)

// ScheduledHours is the target for one calendar day under contract.
// Weekly-model contracts read the weekday slot of their schedule; monthly
// contracts owe DailyTargetHours Monday to Friday and nothing at weekends.
func ScheduledHours(contract ContractDetails, date generic.TimePoint) decimal.Decimal {
	if contract.TargetHoursModel == ModelWeekly {
		if contract.WeeklySchedule == nil {
			return decimal.Zero
		}
		return contract.WeeklySchedule[date.Weekday()]
	}
	if date.IsWeekend() {
		return decimal.Zero
	}
	return contract.DailyTargetHours
}
