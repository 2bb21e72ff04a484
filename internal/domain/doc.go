// Package domain defines the core business entities of the household
// chore planner: task definitions, household members, expanded task
// occurrences, and the derived fairness/rebalance reports.
//
// Entities are plain records with constructor functions and Validate
// methods. They carry no persistence or transport concerns; stores and
// handlers convert to and from their own representations.
package domain
