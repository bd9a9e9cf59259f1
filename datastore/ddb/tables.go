/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"encoding"
	"fmt"
	"maps"
	"reflect"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/entitymeta/datastore"
	"github.com/suparena/entitymeta/errors"
	"github.com/suparena/entitymeta/resolver"
	"github.com/suparena/entitymeta/storagemodels"
	"github.com/suparena/entitymeta/wiretype"
)

// CreateTableInput describes the table of md. Provisioned limits become
// provisioned throughput; on-demand tables and tables without limits use
// pay-per-request billing.
func CreateTableInput(md *resolver.EntityMetadata, defaults storagemodels.DefaultsProvider) *sdk.CreateTableInput {
	column := md.IDColumn()
	in := &sdk.CreateTableInput{
		TableName: aws.String(md.TableName()),
		AttributeDefinitions: []types.AttributeDefinition{{
			AttributeName: aws.String(column),
			AttributeType: md.IDWireType().KeyKind(),
		}},
		KeySchema: []types.KeySchemaElement{{
			AttributeName: aws.String(column),
			KeyType:       types.KeyTypeHash,
		}},
		BillingMode: types.BillingModePayPerRequest,
	}

	limits, ok := md.TableLimits(defaults)
	if ok && limits.Mode == storagemodels.Provisioned {
		in.BillingMode = types.BillingModeProvisioned
		in.ProvisionedThroughput = &types.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(int64(limits.ReadUnits)),
			WriteCapacityUnits: aws.Int64(int64(limits.WriteUnits)),
		}
	}
	return in
}

// KeyValue converts a key to its attribute value. Numeric wire types become
// N, everything else S.
func KeyValue(w wiretype.WireType, id any) (types.AttributeValue, error) {
	if datastore.IsZeroID(id) {
		return nil, errors.NewValidationError("id", "key is required")
	}
	switch w {
	case wiretype.String, wiretype.Integer, wiretype.Long, wiretype.Double:
		av, err := attributevalue.Marshal(id)
		if err != nil {
			return nil, err
		}
		if !matchesKind(av, w.KeyKind()) {
			return nil, errors.NewValidationError("id", fmt.Sprintf("key %s does not match wire type %s", datastore.KeyString(id), w))
		}
		return av, nil
	case wiretype.Number:
		return &types.AttributeValueMemberN{Value: datastore.KeyString(id)}, nil
	case wiretype.Timestamp:
		return &types.AttributeValueMemberS{Value: datastore.KeyString(id)}, nil
	}
	return nil, errors.NewInternalError("", "no key encoding for wire type %s", w)
}

// KeyOf builds the primary key of id for md.
func KeyOf(md *resolver.EntityMetadata, id any) (map[string]types.AttributeValue, error) {
	av, err := KeyValue(md.IDWireType(), id)
	if err != nil {
		return nil, err
	}
	return map[string]types.AttributeValue{md.IDColumn(): av}, nil
}

// GetItemInput reads one item, consistently when md requests ABSOLUTE consistency.
func GetItemInput(md *resolver.EntityMetadata, id any) (*sdk.GetItemInput, error) {
	key, err := KeyOf(md, id)
	if err != nil {
		return nil, err
	}
	return &sdk.GetItemInput{
		TableName:      aws.String(md.TableName()),
		Key:            key,
		ConsistentRead: aws.Bool(md.Consistency() == storagemodels.Absolute),
	}, nil
}

// PutItemInput writes entity under id. Generated keys must not overwrite an
// existing item, so the put is conditioned on the key being absent.
func PutItemInput(md *resolver.EntityMetadata, entity any, id any, generated bool) (*sdk.PutItemInput, error) {
	item, err := attributevalue.MarshalMapWithOptions(entity, encoderOptions)
	if err != nil {
		return nil, err
	}
	key, err := KeyValue(md.IDWireType(), id)
	if err != nil {
		return nil, err
	}
	item[md.IDColumn()] = key

	in := &sdk.PutItemInput{
		TableName: aws.String(md.TableName()),
		Item:      item,
	}
	if generated {
		expr, err := expression.NewBuilder().
			WithCondition(expression.AttributeNotExists(expression.Name(md.IDColumn()))).
			Build()
		if err != nil {
			return nil, err
		}
		in.ConditionExpression = expr.Condition()
		in.ExpressionAttributeNames = expr.Names()
		in.ExpressionAttributeValues = expr.Values()
	}
	return in, nil
}

// DeleteItemInput removes the item stored under id.
func DeleteItemInput(md *resolver.EntityMetadata, id any) (*sdk.DeleteItemInput, error) {
	key, err := KeyOf(md, id)
	if err != nil {
		return nil, err
	}
	return &sdk.DeleteItemInput{
		TableName: aws.String(md.TableName()),
		Key:       key,
	}, nil
}

func matchesKind(av types.AttributeValue, kind types.ScalarAttributeType) bool {
	switch av.(type) {
	case *types.AttributeValueMemberS:
		return kind == types.ScalarAttributeTypeS
	case *types.AttributeValueMemberN:
		return kind == types.ScalarAttributeTypeN
	}
	return false
}

// Attribute values of types with text encodings, such as strfmt.DateTime,
// are stored as their text form.
func encoderOptions(o *attributevalue.EncoderOptions) {
	o.UseEncodingMarshalers = true
}

func decoderOptions(o *attributevalue.DecoderOptions) {
	o.UseEncodingUnmarshalers = true
}

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

// DecodeKey converts the key attribute of an item back to the declared key
// type of md. N attributes of arbitrary precision keys are parsed through
// the type's text encoding.
func DecodeKey(md *resolver.EntityMetadata, av types.AttributeValue) (any, error) {
	declared := md.IDType()
	base := declared
	if base.Kind() == reflect.Pointer {
		base = base.Elem()
	}

	if n, ok := av.(*types.AttributeValueMemberN); ok && reflect.PointerTo(base).Implements(textUnmarshalerType) {
		v := reflect.New(base)
		if err := v.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(n.Value)); err != nil {
			return nil, fmt.Errorf("decoding key %s: %w", n.Value, err)
		}
		if declared.Kind() == reflect.Pointer {
			return v.Interface(), nil
		}
		return v.Elem().Interface(), nil
	}

	v := reflect.New(declared)
	if err := attributevalue.UnmarshalWithOptions(av, v.Interface(), decoderOptions); err != nil {
		return nil, fmt.Errorf("decoding key: %w", err)
	}
	return v.Elem().Interface(), nil
}

// UnmarshalItem decodes item into a new T. The key attribute is decoded with
// DecodeKey and assigned through md when the key field is settable.
func UnmarshalItem[T any](md *resolver.EntityMetadata, item map[string]types.AttributeValue) (*T, error) {
	result := new(T)
	column := md.IDColumn()
	key, hasKey := item[column]

	if !hasKey || !md.IDField().Settable() {
		if err := attributevalue.UnmarshalMapWithOptions(item, result, decoderOptions); err != nil {
			return nil, err
		}
		return result, nil
	}

	rest := maps.Clone(item)
	delete(rest, column)
	if err := attributevalue.UnmarshalMapWithOptions(rest, result, decoderOptions); err != nil {
		return nil, err
	}
	id, err := DecodeKey(md, key)
	if err != nil {
		return nil, err
	}
	if err := md.SetID(result, id); err != nil {
		return nil, err
	}
	return result, nil
}
