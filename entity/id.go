package entity

import "strconv"

// ID is the process-unique identifier of an entity.
type ID int32

// NullID is the identifier carried by null entities. Allocation never produces it.
const NullID ID = -1

// IsNull reports whether id is the null sentinel.
func (id ID) IsNull() bool {
	return id == NullID
}

// Int32 returns the raw identifier value.
func (id ID) Int32() int32 {
	return int32(id)
}

func (id ID) String() string {
	if id.IsNull() {
		return "null"
	}
	return strconv.FormatInt(int64(id), 10)
}
