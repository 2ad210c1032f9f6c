// Package props is the optional convenience layer that turns generic action
// dispatch into four canonical property and persistence operations: set,
// get, save, and load.
//
// A class delegates to Handle before its own action handling:
//
//	func (c *myClass) HandleAction(obj mexbind.HostObject, action string, nout int, in []any) ([]any, bool, error) {
//	    if out, handled, err := props.Handle(c.props, action, nout, in); handled || err != nil {
//	        return out, handled, err
//	    }
//	    // class-specific actions
//	    return nil, false, nil
//	}
//
// The four action names are reserved: a class using this layer may not
// rebind them with different semantics.
//
// Map is a declarative property table for classes that do not need custom
// Properties plumbing; load goes through the same setters as set, so
// validation is never bypassed on restore.
package props
