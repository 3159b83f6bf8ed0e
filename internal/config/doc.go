// Package config defines the desired state atlasctl reconciles and the
// runtime settings it runs with.
//
// A [Document] lists [ClusterSpec] and [UserSpec] entries, usually loaded from
// atlas.yaml. Role grants accept shorthand forms at this boundary (see
// [RoleGrant]) and are resolved to the canonical API shape before they reach
// the reconciler. [Settings] carries credentials and transport tuning read
// from the environment.
package config
