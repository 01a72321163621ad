// Package services implements the driving ports: the ingestion pipeline,
// the retrieval engine, the answer orchestrator, document management and
// the administrative cross-partition search.
//
// Services depend only on domain types and driven port interfaces; all
// infrastructure sits behind adapters.
package services
