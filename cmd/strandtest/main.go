package main

import (
	hedges "github.com/doismellburning/hedges/src"
)

func main() {
	hedges.StrandTestMain()
}
