/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps its policy parameters in a singleton stored under the
"_c:<package>" key. The singleton is created from the "conf" section of the
genesis file and may later be changed with an UpdateConfigurationHandler
transaction signed by the configuration owner.

Not being able to get a configuration value is a critical condition for the
application: handlers return the load error and the transaction fails.
*/
package gconf
