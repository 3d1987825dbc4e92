// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port
// interfaces. DirectoryService answers stateless queries over the loaded
// collection; SessionService hosts one page controller per browse session.
package app
