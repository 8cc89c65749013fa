package types

import (
	"encoding/json"
	"testing"
)

func TestOptionalUnmarshal(t *testing.T) {
	var patch AppointmentPatch

	// Absent field: not set.
	if err := json.Unmarshal([]byte(`{}`), &patch); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if patch.MechanicID.Set {
		t.Fatal("expected absent field to be unset")
	}

	// Explicit null: set but not valid.
	patch = AppointmentPatch{}
	if err := json.Unmarshal([]byte(`{"mechanic_id": null}`), &patch); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !patch.MechanicID.Set || patch.MechanicID.Valid {
		t.Fatalf("expected set and invalid, got set=%v valid=%v", patch.MechanicID.Set, patch.MechanicID.Valid)
	}

	// Value: set and valid.
	patch = AppointmentPatch{}
	if err := json.Unmarshal([]byte(`{"mechanic_id": 7}`), &patch); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !patch.MechanicID.Set || !patch.MechanicID.Valid || patch.MechanicID.Value != 7 {
		t.Fatalf("expected value 7, got %+v", patch.MechanicID)
	}
}

func TestOptionalUnmarshalWrongType(t *testing.T) {
	var patch AppointmentPatch
	if err := json.Unmarshal([]byte(`{"mechanic_id": "seven"}`), &patch); err == nil {
		t.Fatal("expected error for wrong type")
	}
}

func TestValidStatus(t *testing.T) {
	for _, status := range []string{StatusPending, StatusCompleted, StatusCanceled} {
		if !ValidStatus(status) {
			t.Errorf("expected %q to be valid", status)
		}
	}
	for _, status := range []string{"", "pending", "DONE"} {
		if ValidStatus(status) {
			t.Errorf("expected %q to be invalid", status)
		}
	}
}
