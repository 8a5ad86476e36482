package domain

// DefaultKeyPrefix namespaces every key the service writes.
const DefaultKeyPrefix = "searchable:"

// RecordKeyPrefix is the key prefix shared by all records of a collection.
func RecordKeyPrefix(prefix, collection string) string {
	return prefix + collection + ":"
}

// RecordKey is the storage key of one record.
func RecordKey(prefix, collection, id string) string {
	return RecordKeyPrefix(prefix, collection) + id
}

// IndexName is the full-text index name of a collection.
func IndexName(prefix, collection string) string {
	return prefix + collection + ":idx"
}
