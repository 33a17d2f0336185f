package mongodb

import (
	"fmt"

	"github.com/Lumos-Labs-HQ/menuseed/internal/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func toDocument(raw bson.M) types.Document {
	doc := types.Document{
		ID:     idString(raw["_id"]),
		Fields: make(map[string]interface{}, len(raw)),
	}
	for k, v := range raw {
		if k == "_id" {
			continue
		}
		doc.Fields[k] = convertBSONValue(v)
	}
	return doc
}

func idString(v interface{}) string {
	switch id := v.(type) {
	case string:
		return id
	case primitive.ObjectID:
		return id.Hex()
	default:
		return fmt.Sprint(id)
	}
}

// convertBSONValue converts BSON values to standard Go types
func convertBSONValue(v interface{}) interface{} {
	switch val := v.(type) {
	case bson.M:
		result := make(map[string]interface{})
		for k, v := range val {
			result[k] = convertBSONValue(v)
		}
		return result
	case bson.A:
		result := make([]interface{}, len(val))
		for i, v := range val {
			result[i] = convertBSONValue(v)
		}
		return result
	case bson.D:
		result := make(map[string]interface{})
		for _, elem := range val {
			result[elem.Key] = convertBSONValue(elem.Value)
		}
		return result
	case primitive.ObjectID:
		return val.Hex()
	case primitive.DateTime:
		return val.Time()
	default:
		return v
	}
}
