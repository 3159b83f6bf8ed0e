// Package async provides bounded parallel task execution with error
// collection.
//
// [RunParallel] runs independent tasks with at most limit in flight and
// reports every failure, not just the first. It backs the multi-resource
// apply, where one failing resource must not stop the others.
package async
