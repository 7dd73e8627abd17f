package constants_test

import (
	"context"
	"fmt"

	"github.com/agentstation/usersweep/pkg/constants"
)

// Example demonstrates bounding a store call with the shared timeout.
func Example() {
	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultOperationTimeout)
	defer cancel()

	_ = ctx
	fmt.Println(constants.PrimaryCollection)
	fmt.Println(constants.DefaultCascadeCollections())

	// Output:
	// usuarios
	// [verification_codes codigos_verificacao]
}
