// Command labelpivot converts object-detection dataset archives into COCO
// JSON through the canonical record table.
package main

import "github.com/mesh-intelligence/labelpivot/internal/cli"

func main() {
	cli.Execute()
}
