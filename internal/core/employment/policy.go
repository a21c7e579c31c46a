// Package employment は求人の集合からプロフェッショナルの就業状態を導出し、書き戻します。
package employment

import (
	"github.com/ogurasousui/placement-crm/internal/core/joboffer"
	"github.com/ogurasousui/placement-crm/internal/core/professional"
)

// Derive は professionalID が割り当てられた有効な求人から就業状態を導出します。
// 論理削除済みと ABORT の求人は無視します。
func Derive(professionalID string, offers []*joboffer.JobOffer) professional.EmploymentState {
	candidate := false
	for _, offer := range offers {
		if offer == nil || offer.Deleted || offer.ProfessionalID != professionalID {
			continue
		}
		switch offer.Status {
		case joboffer.StatusConsolidated, joboffer.StatusDone:
			return professional.StateEmployed
		case joboffer.StatusSelectionPhase:
			candidate = true
		}
	}
	if candidate {
		return professional.StateNotAvailable
	}
	return professional.StateAvailableForWork
}

// Resolve は現在の状態と導出結果から書き込む状態を決めます。
// UNEMPLOYED は求人の削除を契機とした再計算でのみ AVAILABLE_FOR_WORK に戻ります。
func Resolve(current, derived professional.EmploymentState, releaseUnemployed bool) professional.EmploymentState {
	if current == professional.StateUnemployed && derived == professional.StateAvailableForWork && !releaseUnemployed {
		return professional.StateUnemployed
	}
	return derived
}
