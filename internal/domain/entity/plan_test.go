package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeInspectionPlan_Expectations(t *testing.T) {
	plan, err := DecodeInspectionPlan([]byte(`{"Inspection_Plan": {"Door": {"in_place": [true, null], "free_of_damage": true, "has_correct_color": null}}}`))
	require.NoError(t, err)

	door := plan.Classes["Door"]
	require.True(t, door["in_place"].AllowsUnknown())
	require.False(t, door["free_of_damage"].AllowsUnknown())
	require.True(t, door["has_correct_color"].AllowsUnknown())
}

func TestDecodeInspectionPlan_MissingSection(t *testing.T) {
	_, err := DecodeInspectionPlan([]byte(`{"Something": {}}`))
	require.True(t, errors.Is(err, ErrDecode))
}

func TestDecodeInspectionPlan_BadExpectation(t *testing.T) {
	_, err := DecodeInspectionPlan([]byte(`{"Inspection_Plan": {"Door": {"in_place": "yes"}}}`))
	require.Error(t, err)
}

func TestExpectation_RoundTrip(t *testing.T) {
	e := Expect(Bool(true), nil)
	data, err := e.MarshalJSON()
	require.NoError(t, err)
	require.JSONEq(t, `[true, null]`, string(data))
}

func TestDecodeResponsePlan(t *testing.T) {
	plan, err := DecodeResponsePlan([]byte(`{"Response_Plan": {"Bumper": {"in_place": true, "has_correct_color": null}}}`))
	require.NoError(t, err)
	require.True(t, *plan.Classes["Bumper"]["in_place"])
	require.Nil(t, plan.Classes["Bumper"]["has_correct_color"])
}

func TestCycleReport_Passed(t *testing.T) {
	r := &CycleReport{
		Outcome:  OutcomeCompleted,
		Response: &ResponsePlan{Classes: map[string]map[string]*bool{"Door": {"in_place": Bool(true), "has_correct_color": nil}}},
	}
	require.True(t, r.Passed())

	r.Response.Classes["Door"]["free_of_damage"] = Bool(false)
	require.False(t, r.Passed())

	require.False(t, (&CycleReport{Outcome: OutcomeNoPlan}).Passed())
}

func TestLookupError_Is(t *testing.T) {
	err := error(&LookupError{Stage: StageSubmodel, Key: "Inspection_Plan"})
	require.True(t, errors.Is(err, ErrRegistryLookup))
	require.Contains(t, err.Error(), "Inspection_Plan")
}
