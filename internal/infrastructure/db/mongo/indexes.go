package mongo

import (
	"go.mongodb.org/mongo-driver/mongo/options"
)

func uniqueIndex() *options.IndexOptions {
	return options.Index().SetUnique(true)
}

func sparseUniqueIndex() *options.IndexOptions {
	return options.Index().SetUnique(true).SetSparse(true)
}
