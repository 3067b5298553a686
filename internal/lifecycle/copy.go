package lifecycle

import "github.com/teamflowhq/teamflow-backend/pkg/enums"

// subscriptionConfirmations is the caller-facing copy shown after each
// subscription status change, keyed by the target status.
var subscriptionConfirmations = map[enums.SubscriptionStatus]string{
	enums.SubscriptionStatusActive:    "L'abonnement a été activé avec succès.",
	enums.SubscriptionStatusPending:   "L'abonnement a été remis en attente.",
	enums.SubscriptionStatusCancelled: "L'abonnement a été annulé avec succès.",
	enums.SubscriptionStatusExpired:   "L'abonnement a été marqué comme expiré.",
}

var recruitmentConfirmations = map[enums.RecruitmentStatus]string{
	enums.RecruitmentStatusPublished: "L'offre d'emploi a été publiée avec succès.",
	enums.RecruitmentStatusClosed:    "L'offre d'emploi a été fermée.",
}

var fileConfirmations = map[enums.FileStatus]string{
	enums.FileStatusPending:   "Le fichier a été remis en attente de validation.",
	enums.FileStatusValidated: "Le fichier a été validé avec succès.",
	enums.FileStatusRejected:  "Le fichier a été rejeté.",
}

// ConfirmationMessage returns the display copy for a completed transition
// to target, or an empty string when no copy is defined.
func ConfirmationMessage(entity Entity, target string) string {
	switch entity {
	case EntitySubscription:
		return subscriptionConfirmations[enums.SubscriptionStatus(target)]
	case EntityRecruitment:
		return recruitmentConfirmations[enums.RecruitmentStatus(target)]
	case EntityFile:
		return fileConfirmations[enums.FileStatus(target)]
	default:
		return ""
	}
}
