package object

import "strconv"

type Int struct {
	*base
	value int64
}

func (i *Int) Type() Type {
	return INT
}

func (i *Int) Inspect() string {
	return strconv.FormatInt(i.value, 10)
}

func (i *Int) String() string {
	return i.Inspect()
}

func (i *Int) Value() int64 {
	return i.value
}

func (i *Int) Interface() interface{} {
	return i.value
}

func (i *Int) Equals(other Object) bool {
	otherInt, ok := other.(*Int)
	if !ok {
		return false
	}
	return i.value == otherInt.value
}

func (i *Int) IsTruthy() bool {
	return i.value != 0
}

func NewInt(value int64) *Int {
	return &Int{value: value}
}
