/*
Package domain holds the Survey aggregate and its value objects.

A Survey is built with NewSurvey, receives options through AddSurveyOption or
AddSurveyOptions, and then has its vote outcome computed exactly once per
request by CalculateOutcome or CalculateOneSidedOutcome. After a successful
calculation the votes of all options add up to NumberOfRespondents.

Business-rule violations are returned as *SurveyDomainError. Missing required
arguments wrap ErrNilArgument and indicate a bug in the caller.

Randomness is always supplied by the caller through Rand so outcomes can be
reproduced in tests.
*/
package domain
