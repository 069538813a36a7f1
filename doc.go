/*
Package xcsf implements XCSF, an accuracy-based evolutionary Learning
Classifier System. A population of condition-action-prediction rules is
co-evolved by a steady-state genetic algorithm driven by the accuracy of
each rule's local prediction, against a stream of supervised
(input, target) samples or reinforcement-learning (state, action, reward)
samples.

The engine handle is Xcsf, created with New. Supervised use calls Fit,
Predict and Score; reinforcement-learning use calls Step and Update in a
loop around an external environment. See the condition.go, action.go and
prediction.go files for the pluggable rule-component contracts, and
neural's doc.go for the shared feed-forward substrate they delegate to.
*/
package xcsf
