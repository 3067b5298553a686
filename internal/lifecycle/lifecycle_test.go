package lifecycle

import (
	"testing"

	pkgerrors "github.com/teamflowhq/teamflow-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name      string
		entity    Entity
		current   string
		requested string
		fields    Fields
		wantCode  pkgerrors.Code
	}{
		{name: "subscription pending to active", entity: EntitySubscription, current: "pending", requested: "active"},
		{name: "subscription expired back to active", entity: EntitySubscription, current: "expired", requested: "active"},
		{name: "subscription active to cancelled", entity: EntitySubscription, current: "active", requested: "cancelled"},
		{name: "subscription invalid target", entity: EntitySubscription, current: "active", requested: "archived", wantCode: pkgerrors.CodeValidation},
		{name: "subscription invalid current", entity: EntitySubscription, current: "frozen", requested: "active", wantCode: pkgerrors.CodeValidation},

		{name: "recruitment draft to published", entity: EntityRecruitment, current: "draft", requested: "published"},
		{name: "recruitment published to closed", entity: EntityRecruitment, current: "published", requested: "closed"},
		{name: "recruitment draft to closed", entity: EntityRecruitment, current: "draft", requested: "closed"},
		{name: "recruitment closed cannot republish", entity: EntityRecruitment, current: "closed", requested: "published", wantCode: pkgerrors.CodeStateConflict},
		{name: "recruitment published cannot revert to draft", entity: EntityRecruitment, current: "published", requested: "draft", wantCode: pkgerrors.CodeStateConflict},

		{name: "file pending to validated", entity: EntityFile, current: "pending", requested: "validated"},
		{name: "file rejected back to pending", entity: EntityFile, current: "rejected", requested: "pending"},
		{name: "file rejection with reason", entity: EntityFile, current: "pending", requested: "rejected", fields: Fields{FieldRejectionReason: "document illisible"}},
		{name: "file rejection without reason", entity: EntityFile, current: "pending", requested: "rejected", wantCode: pkgerrors.CodeValidation},
		{name: "file rejection with blank reason", entity: EntityFile, current: "pending", requested: "rejected", fields: Fields{FieldRejectionReason: "   "}, wantCode: pkgerrors.CodeValidation},

		{name: "unknown entity", entity: Entity("invoice"), current: "pending", requested: "active", wantCode: pkgerrors.CodeValidation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.entity, tc.current, tc.requested, tc.fields)
			if tc.wantCode == "" {
				require.NoError(t, err)
				return
			}
			var appErr *pkgerrors.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tc.wantCode, appErr.Code())
		})
	}
}

func TestValidateRejectionReasonDetails(t *testing.T) {
	err := Validate(EntityFile, "pending", "rejected", nil)
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	details, ok := appErr.Details().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "required", details[FieldRejectionReason])
}

func TestAllowedTargets(t *testing.T) {
	assert.ElementsMatch(t, []string{"pending", "active", "cancelled", "expired"}, AllowedTargets(EntitySubscription, "expired"))
	assert.ElementsMatch(t, []string{"published", "closed"}, AllowedTargets(EntityRecruitment, "draft"))
	assert.ElementsMatch(t, []string{"closed"}, AllowedTargets(EntityRecruitment, "published"))
	assert.ElementsMatch(t, []string{"closed"}, AllowedTargets(EntityRecruitment, "closed"))
	assert.ElementsMatch(t, []string{"pending", "validated", "rejected"}, AllowedTargets(EntityFile, "pending"))
	assert.Nil(t, AllowedTargets(EntitySubscription, "frozen"))
}

func TestConfirmationMessage(t *testing.T) {
	assert.Equal(t, "L'abonnement a été activé avec succès.", ConfirmationMessage(EntitySubscription, "active"))
	assert.Equal(t, "L'offre d'emploi a été fermée.", ConfirmationMessage(EntityRecruitment, "closed"))
	assert.Equal(t, "Le fichier a été rejeté.", ConfirmationMessage(EntityFile, "rejected"))
	assert.Empty(t, ConfirmationMessage(EntitySubscription, "archived"))
	assert.Empty(t, ConfirmationMessage(Entity("invoice"), "active"))
}
