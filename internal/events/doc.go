// Package events provides types and interfaces for plan lifecycle
// notifications.
//
// This package defines event types and handler interfaces that allow for
// loose coupling between components in the system. The plan service can
// emit events without knowing which handlers will process them, enabling
// better separation of concerns and reducing circular dependencies.
//
// The primary components are:
// - PlanEvent: Represents a plan lifecycle change
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
package events
