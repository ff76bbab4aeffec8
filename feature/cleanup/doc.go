// Package cleanup executes a scan report against the live stack.
package cleanup
