// Package core holds small numeric helpers shared by the transform packages.
package core
