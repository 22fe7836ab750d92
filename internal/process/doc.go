// Package process terminates the browser processes started for equation
// rendering, including the helpers Chrome forks.
package process
