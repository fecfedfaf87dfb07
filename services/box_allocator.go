package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/autoservice/garage-api/models"
	"gorm.io/gorm"
)

// SlotNumber is a box or place number as typed by an operator.
// It accepts a JSON number, a numeric string, an empty string or null.
type SlotNumber struct {
	Raw string
	Set bool
}

// NewSlotNumber builds a present SlotNumber from an int
func NewSlotNumber(n int) SlotNumber {
	return SlotNumber{Raw: strconv.Itoa(n), Set: true}
}

func (s *SlotNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = SlotNumber{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		str = strings.TrimSpace(str)
		*s = SlotNumber{Raw: str, Set: str != ""}
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("box and place numbers must be numbers or strings: %w", err)
	}
	*s = SlotNumber{Raw: num.String(), Set: true}
	return nil
}

func (s SlotNumber) MarshalJSON() ([]byte, error) {
	if !s.Set {
		return []byte("null"), nil
	}
	return json.Marshal(s.Raw)
}

// Allocation is the outcome of resolving a box. BoxID is nil when no box was assigned;
// Warning explains why when the operator asked for one.
type Allocation struct {
	BoxID   *uint
	Warning string
}

// Assigned reports whether a box was found
func (a Allocation) Assigned() bool {
	return a.BoxID != nil
}

// AllocateBox resolves an operator-entered (box, place) pair to a Box id.
// A miss is not an error: the order stays unscheduled and the Allocation carries a warning.
func AllocateBox(db *gorm.DB, boxNumber, placeNumber SlotNumber) (Allocation, error) {
	if !boxNumber.Set && !placeNumber.Set {
		return Allocation{}, nil
	}
	if !boxNumber.Set || !placeNumber.Set {
		return miss("both box number and place number are needed to assign a box"), nil
	}

	boxNo, err := strconv.Atoi(boxNumber.Raw)
	if err != nil {
		return miss(fmt.Sprintf("box number %q is not a number", boxNumber.Raw)), nil
	}
	placeNo, err := strconv.Atoi(placeNumber.Raw)
	if err != nil {
		return miss(fmt.Sprintf("place number %q is not a number", placeNumber.Raw)), nil
	}

	var box models.Box
	err = db.Where("box_number = ? AND place_number = ?", boxNo, placeNo).First(&box).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return miss(fmt.Sprintf("box %d place %d does not exist", boxNo, placeNo)), nil
	}
	if err != nil {
		return Allocation{}, InternalError("Failed to look up box", err)
	}

	id := box.ID
	return Allocation{BoxID: &id}, nil
}

func miss(reason string) Allocation {
	warning := "Order left unscheduled: " + reason
	log.Printf("Box allocation miss: %s", reason)
	return Allocation{Warning: warning}
}
