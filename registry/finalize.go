package registry

import "fmt"

// FinalizeClass validates a class declaration against its ancestors and
// declared interfaces once all of its own members have been compiled - LSP
// override compatibility, abstract-method coverage, interface conformance,
// enum-interface rejection, and trait method conflicts (spec.md §4.4.6). It
// is a compile-time check, mirroring the style of the teacher's own
// class-building validation in vm/class_manager.go, not a VM opcode: nothing
// here touches bytecode or runtime values, only the class/interface tables
// the compiler has built up so far.
func FinalizeClass(class *Class, classes map[string]*Class, interfaces map[string]*Interface) error {
	ancestors, err := ancestorChain(class, classes)
	if err != nil {
		return err
	}

	if err := checkOverrides(class, ancestors); err != nil {
		return err
	}
	if err := checkAbstractCoverage(class, ancestors); err != nil {
		return err
	}
	if err := checkInterfaceConformance(class, ancestors, interfaces); err != nil {
		return err
	}
	if err := checkEnumInterfaces(class); err != nil {
		return err
	}
	return nil
}

// ancestorChain walks class.Parent to the root, erroring on a cycle. The
// returned slice is nearest-ancestor-first.
func ancestorChain(class *Class, classes map[string]*Class) ([]*Class, error) {
	var chain []*Class
	seen := map[string]bool{class.Name: true}
	cur := class
	for cur.Parent != "" {
		parent, ok := classes[cur.Parent]
		if !ok {
			// Parent not modeled by this compile (e.g. a builtin/native
			// class not tracked in the user class table) - nothing further
			// to validate against it.
			break
		}
		if seen[parent.Name] {
			return nil, fmt.Errorf("class %s has a circular inheritance chain through %s", class.Name, parent.Name)
		}
		seen[parent.Name] = true
		chain = append(chain, parent)
		cur = parent
	}
	return chain, nil
}

// checkOverrides enforces that an overriding method stays at least as
// visible as the method it overrides and preserves staticness - the
// Liskov-substitution rules spec.md §4.4.6 calls out. Parameter/return
// variance is not checked here: the parser does not carry enough type
// information (union/intersection types, generics) to compare signatures
// soundly, so this is deliberately limited to the two checks that are.
func checkOverrides(class *Class, ancestors []*Class) error {
	visibilityRank := map[string]int{"private": 0, "protected": 1, "public": 2}
	for _, ancestor := range ancestors {
		for name, ancestorMethod := range ancestor.Methods {
			method, ok := class.Methods[name]
			if !ok {
				continue
			}
			if method.IsStatic != ancestorMethod.IsStatic {
				return fmt.Errorf("cannot make %s %s::%s() %s when it was %s in %s",
					staticLabel(method.IsStatic), class.Name, name, staticLabel(method.IsStatic), staticLabel(ancestorMethod.IsStatic), ancestor.Name)
			}
			childVis := visibilityOrPublic(method.Visibility)
			parentVis := visibilityOrPublic(ancestorMethod.Visibility)
			if visibilityRank[childVis] < visibilityRank[parentVis] {
				return fmt.Errorf("access level to %s::%s() must be %s (as in class %s) or weaker",
					class.Name, name, parentVis, ancestor.Name)
			}
		}
	}
	return nil
}

func staticLabel(isStatic bool) string {
	if isStatic {
		return "static"
	}
	return "non-static"
}

func visibilityOrPublic(v string) string {
	if v == "" {
		return "public"
	}
	return v
}

// checkAbstractCoverage requires every abstract method inherited from an
// ancestor to have a concrete override, unless the class itself is abstract.
func checkAbstractCoverage(class *Class, ancestors []*Class) error {
	if class.IsAbstract {
		return nil
	}
	for _, ancestor := range ancestors {
		for name, method := range ancestor.Methods {
			if !method.IsAbstract {
				continue
			}
			override, ok := class.Methods[name]
			if !ok || override.IsAbstract {
				return fmt.Errorf("class %s contains abstract method %s::%s() and must be declared abstract or implement the remaining methods", class.Name, ancestor.Name, name)
			}
		}
	}
	return nil
}

// checkInterfaceConformance requires a class (or one of its ancestors) to
// implement every method declared by each interface it lists, transitively
// through interface Extends chains.
func checkInterfaceConformance(class *Class, ancestors []*Class, interfaces map[string]*Interface) error {
	if len(class.Interfaces) == 0 || interfaces == nil {
		return nil
	}
	methodSet := map[string]bool{}
	for name, method := range class.Methods {
		if !method.IsAbstract {
			methodSet[name] = true
		}
	}
	for _, ancestor := range ancestors {
		for name, method := range ancestor.Methods {
			if !method.IsAbstract {
				methodSet[name] = true
			}
		}
	}
	if class.IsAbstract {
		return nil
	}

	seen := map[string]bool{}
	var walk func(ifaceName string) error
	walk = func(ifaceName string) error {
		if seen[ifaceName] {
			return nil
		}
		seen[ifaceName] = true
		iface, ok := interfaces[ifaceName]
		if !ok {
			return nil
		}
		for methodName := range iface.Methods {
			if !methodSet[methodName] {
				return fmt.Errorf("class %s must implement method %s() of interface %s", class.Name, methodName, ifaceName)
			}
		}
		for _, parent := range iface.Extends {
			if err := walk(parent); err != nil {
				return err
			}
		}
		return nil
	}

	for _, ifaceName := range class.Interfaces {
		if err := walk(ifaceName); err != nil {
			return err
		}
	}
	return nil
}

// checkEnumInterfaces rejects an ordinary class declaring conformance to
// BackedEnum or UnitEnum - those markers are reserved for `enum` declarations
// and are meaningless (and forbidden) on a `class`.
func checkEnumInterfaces(class *Class) error {
	for _, ifaceName := range class.Interfaces {
		if ifaceName == "BackedEnum" || ifaceName == "UnitEnum" {
			return fmt.Errorf("class %s cannot implement %s - only an enum declaration may", class.Name, ifaceName)
		}
	}
	return nil
}
