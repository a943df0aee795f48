package uid

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/labstack/gommon/log"
)

var (
	node *snowflake.Node
	once sync.Once
)

func Init(machineID int64) {
	once.Do(func() {
		var err error
		node, err = snowflake.NewNode(machineID)
		if err != nil {
			log.Fatalf("failed to initialize snowflake node: %v", err)
		}
	})
}

// Generate returns a new note id as its decimal string form. Ids are
// opaque to the rest of the system and never reused.
func Generate() string {
	if node == nil {
		log.Fatalf("uid package not initialized")
	}
	return node.Generate().String()
}
