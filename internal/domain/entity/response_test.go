package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func translation(table map[string]string) TranslateFunc {
	return func(className string) (string, bool) {
		key, ok := table[className]
		return key, ok
	}
}

func mustPlan(t *testing.T, raw string) *InspectionPlan {
	t.Helper()
	plan, err := DecodeInspectionPlan([]byte(raw))
	require.NoError(t, err)
	return plan
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestBuildResponsePlan_CameraValueUsed(t *testing.T) {
	plan := mustPlan(t, `{"Inspection_Plan": {"Door": {"in_place": [true, null]}}}`)
	simplified := SimplifiedResponse{"DoorCam": {InPlace: true, FreeOfDamage: true}}

	got := BuildResponsePlan(plan, simplified, translation(map[string]string{"Door": "DoorCam"}))
	require.JSONEq(t, `{"Response_Plan": {"Door": {"in_place": true}}}`, mustJSON(t, got))
}

func TestBuildResponsePlan_FallbackFalse(t *testing.T) {
	plan := mustPlan(t, `{"Inspection_Plan": {"Hood": {"free_of_damage": [false]}}}`)

	got := BuildResponsePlan(plan, SimplifiedResponse{}, translation(nil))
	require.JSONEq(t, `{"Response_Plan": {"Hood": {"free_of_damage": false}}}`, mustJSON(t, got))
}

func TestBuildResponsePlan_FallbackNullWhenAllowed(t *testing.T) {
	plan := mustPlan(t, `{"Inspection_Plan": {"Roof": {"has_correct_color": [true, null], "roof_in_place": null}}}`)
	simplified := SimplifiedResponse{"RoofCam": {InPlace: true}}

	got := BuildResponsePlan(plan, simplified, translation(map[string]string{"Roof": "RoofCam"}))
	// Цвет камера не сообщает, in_place распознаётся по подстроке
	require.JSONEq(t, `{"Response_Plan": {"Roof": {"has_correct_color": null, "roof_in_place": true}}}`, mustJSON(t, got))
}

func TestBuildResponsePlan_TranslatedButNotDetected(t *testing.T) {
	plan := mustPlan(t, `{"Inspection_Plan": {"Wheel": {"in_place": [true], "free_of_damage": [true, null]}}}`)

	got := BuildResponsePlan(plan, SimplifiedResponse{"DoorCam": {InPlace: true}}, translation(map[string]string{"Wheel": "WheelCam"}))
	require.JSONEq(t, `{"Response_Plan": {"Wheel": {"in_place": false, "free_of_damage": null}}}`, mustJSON(t, got))
}

func TestBuildResponsePlan_NilPlan(t *testing.T) {
	got := BuildResponsePlan(nil, nil, nil)
	require.NotNil(t, got)
	require.Empty(t, got.Classes)
}

func TestCanonicalCheck(t *testing.T) {
	require.Equal(t, CheckInPlace, CanonicalCheck("bumper_in_place"))
	require.Equal(t, CheckFreeOfDamage, CanonicalCheck("free_of_damage_front"))
	require.Equal(t, CheckHasCorrectColor, CanonicalCheck("has_correct_color"))
	require.Equal(t, "is_mounted", CanonicalCheck("is_mounted"))
}
