package mython

import "fmt"

// Method is a named, callable member of a class: an ordered list of
// formal parameter names and a body node.
type Method struct {
	Name   string
	Params []string
	Body   *MethodBody
}

// Class is an immutable descriptor: a name, an ordered list of methods,
// and an optional parent enabling single inheritance.
type Class struct {
	Name    string
	Methods []*Method
	Parent  *Class
}

// NewClass returns a class descriptor with the given name, methods and
// parent (nil for a base class).
func NewClass(name string, methods []*Method, parent *Class) *Class {
	return &Class{Name: name, Methods: methods, Parent: parent}
}

// GetMethod performs the §4.2 method lookup: a linear scan of the class's
// own methods, falling back to the parent chain, or nil if none is found.
func (c *Class) GetMethod(name string) *Method {
	for _, m := range c.Methods {
		if m.Name == name {
			return m
		}
	}
	if c.Parent != nil {
		return c.Parent.GetMethod(name)
	}
	return nil
}

// Instance carries a reference to its class descriptor and an attribute
// table of fields, created on first assignment rather than declared.
type Instance struct {
	Class  *Class
	Fields *Env
}

// NewInstanceOf allocates a fresh instance of cls with an empty field
// table.
func NewInstanceOf(cls *Class) *Instance {
	return &Instance{Class: cls, Fields: NewEnv()}
}

// HasMethod reports whether the instance's class (or an ancestor) defines
// a method named name accepting exactly argumentCount formal parameters.
func (inst *Instance) HasMethod(name string, argumentCount int) bool {
	m := inst.Class.GetMethod(name)
	return m != nil && len(m.Params) == argumentCount
}

// Call invokes method name on the instance with actualArgs, building a
// fresh, non-chained Env containing only self and the bound formals.
func (inst *Instance) Call(name string, actualArgs []Value, ctx *Context) (Value, error) {
	if !inst.HasMethod(name, len(actualArgs)) {
		return Value{}, newRuntimeError(
			"no method %s in class %s with %d arguments",
			name, inst.Class.Name, len(actualArgs),
		)
	}
	m := inst.Class.GetMethod(name)
	frame := NewEnv()
	frame.Set("self", InstanceValue(inst))
	for i, param := range m.Params {
		frame.Set(param, actualArgs[i])
	}
	return m.Body.Eval(frame, ctx)
}

func (c *Class) String() string {
	return fmt.Sprintf("Class %s", c.Name)
}
