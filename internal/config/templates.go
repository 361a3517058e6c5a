package config

// Template returns a starter catalog with a handful of common messages.
func Template() string {
	return catalogTemplate
}

const catalogTemplate = `[[messages]]
id = "23"
name = "patronStatusRequest"

  [[messages.fixed]]
  name = "language"
  length = 3
  type = "string"
  min_length = 3
  max_length = 3

  [[messages.fixed]]
  name = "transactionDate"
  length = 18
  type = "date"

  [[messages.named]]
  name = "institutionId"
  key = "AO"
  type = "string"

  [[messages.named]]
  name = "patronIdentifier"
  key = "AA"
  type = "string"
  min_length = 1

  [[messages.named]]
  name = "terminalPassword"
  key = "AC"
  type = "string"

  [[messages.named]]
  name = "patronPassword"
  key = "AD"
  type = "string"

[[messages]]
id = "24"
name = "patronStatusResponse"

  [[messages.fixed]]
  name = "patronStatus"
  length = 14
  type = "string"

  [[messages.fixed]]
  name = "language"
  length = 3
  type = "string"

  [[messages.fixed]]
  name = "transactionDate"
  length = 18
  type = "date"

  [[messages.named]]
  name = "institutionId"
  key = "AO"

  [[messages.named]]
  name = "patronIdentifier"
  key = "AA"

  [[messages.named]]
  name = "personalName"
  key = "AE"

  [[messages.named]]
  name = "validPatron"
  key = "BL"
  type = "flag"

  [[messages.named]]
  name = "validPatronPassword"
  key = "CQ"
  type = "flag"

  [[messages.named]]
  name = "currencyType"
  key = "BH"
  min_length = 3
  max_length = 3

  [[messages.named]]
  name = "feeAmount"
  key = "BV"

  [[messages.named]]
  name = "screenMessage"
  key = "AF"

  [[messages.named]]
  name = "printLine"
  key = "AG"

[[messages]]
id = "93"
name = "login"

  [[messages.fixed]]
  name = "uidAlgorithm"
  length = 1
  options = ["0"]

  [[messages.fixed]]
  name = "pwdAlgorithm"
  length = 1
  options = ["0"]

  [[messages.named]]
  name = "loginUserId"
  key = "CN"
  min_length = 1

  [[messages.named]]
  name = "loginPassword"
  key = "CO"

  [[messages.named]]
  name = "locationCode"
  key = "CP"

[[messages]]
id = "94"
name = "loginResponse"

  [[messages.fixed]]
  name = "ok"
  length = 1
  options = ["0", "1"]

[[messages]]
id = "99"
name = "scStatus"

  [[messages.fixed]]
  name = "statusCode"
  length = 1
  options = ["0", "1", "2"]

  [[messages.fixed]]
  name = "maxPrintWidth"
  length = 3
  type = "number"
  width = 3
  min = 0
  max = 999

  [[messages.fixed]]
  name = "protocolVersion"
  length = 4
  type = "string"
  options = ["2.00"]
`
