package avrx

import "reflect"

type NotificationName string

type Notification struct {
	Name     NotificationName
	Object   interface{}
	UserInfo map[string]interface{}
}

// Matches reports whether n is addressed to an observer registered for
// name and object. A nil object matches any sender.
func (n Notification) Matches(name NotificationName, object interface{}) bool {
	if n.Name != name {
		return false
	}
	if object == nil {
		return true
	}
	return sameObject(object, n.Object)
}

func sameObject(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == b
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
