package object

import "fmt"

// Internal: do not use. Cell is an implementation detail for closure variable capture.
type Cell struct {
	value *Object
}

func (c *Cell) GetAttr(name string) (Object, bool) {
	return nil, false
}

func (c *Cell) SetAttr(name string, value Object) error {
	return TypeErrorf("cell has no attribute %q", name)
}

func (c *Cell) IsTruthy() bool {
	return true
}

func (c *Cell) Type() Type {
	return CELL
}

func (c *Cell) Inspect() string {
	return c.String()
}

func (c *Cell) String() string {
	if c.value == nil {
		return "cell()"
	}
	return fmt.Sprintf("cell(%s)", *c.value)
}

func (c *Cell) Value() Object {
	if c.value == nil {
		return nil
	}
	return *c.value
}

func (c *Cell) Set(value Object) {
	if c.value == nil {
		return
	}
	*c.value = value
}

func (c *Cell) Interface() interface{} {
	if c.value == nil {
		return nil
	}
	return (*c.value).Interface()
}

func (c *Cell) Equals(other Object) bool {
	otherCell, ok := other.(*Cell)
	if !ok {
		return false
	}
	return c == otherCell
}

func NewCell(value *Object) *Cell {
	return &Cell{value: value}
}
